package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Category string

const (
	CarRental       Category = "Car Rental"
	BikeRental      Category = "Bike Rental"
	WeddingCars     Category = "Wedding Cars"
	CameraEquipment Category = "Camera Equipment"
	TourEquipment   Category = "Tour Equipment"
	SurfPackage     Category = "Surf Package"
	TourPackages    Category = "Tour Packages"
)

// Categories in display order. The first one is selected by default.
var Categories = []Category{
	CarRental,
	BikeRental,
	WeddingCars,
	CameraEquipment,
	TourEquipment,
	SurfPackage,
	TourPackages,
}

func DefaultCategory() Category {
	return Categories[0]
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

var ErrItemNotFound = errors.New("catalog item not found")

type Specifications struct {
	Seats        int    `json:"seats" yaml:"seats"`
	Fuel         string `json:"fuel" yaml:"fuel"`
	Transmission string `json:"transmission" yaml:"transmission"`
	Mileage      string `json:"mileage" yaml:"mileage"`
}

// Item is a rentable listing. The JSON shape is the serialized form handed
// from the listing screen to the details screen.
type Item struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Category       Category        `json:"category" yaml:"category"`
	Price          string          `json:"price" yaml:"price"`
	PriceValue     float64         `json:"priceValue" yaml:"price_value"`
	Seats          string          `json:"seats,omitempty" yaml:"seats"`
	Image          string          `json:"image" yaml:"image"`
	Images         []string        `json:"images" yaml:"images"`
	Description    string          `json:"description,omitempty" yaml:"description"`
	Specifications *Specifications `json:"specifications,omitempty" yaml:"specifications"`
}

// Validate checks the fields the booking flow relies on.
func (it Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return errors.New("item id is required")
	}
	if strings.TrimSpace(it.Name) == "" {
		return errors.New("item name is required")
	}
	if !it.Category.Valid() {
		return fmt.Errorf("unknown category %q", it.Category)
	}
	if it.PriceValue < 0 {
		return fmt.Errorf("negative price %v", it.PriceValue)
	}
	return nil
}

// PrimaryImage is the image stored on bookings.
func (it Item) PrimaryImage() string {
	if len(it.Images) > 0 {
		return it.Images[0]
	}
	return it.Image
}

// DecodeItem parses and validates a serialized item.
func DecodeItem(data []byte) (Item, error) {
	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		return Item{}, fmt.Errorf("decode catalog item: %w", err)
	}
	it = withDefaults(it)
	if err := it.Validate(); err != nil {
		return Item{}, fmt.Errorf("invalid catalog item: %w", err)
	}
	return it, nil
}

// Catalog is the immutable set of listings, in display order.
type Catalog struct {
	items []Item
	byID  map[string]int
}

func New(items []Item) (*Catalog, error) {
	c := &Catalog{items: make([]Item, 0, len(items)), byID: make(map[string]int, len(items))}
	for _, it := range items {
		it = withDefaults(it)
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %q: %w", it.ID, err)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Items returns a copy of all listings.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

func (c *Catalog) Get(id string) (Item, error) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return c.items[i], nil
}

// Search applies the listing filter over the whole catalog.
func (c *Catalog) Search(category Category, query string) []Item {
	return Filter(c.items, category, query)
}

// withDefaults fills the fields a short catalog entry may omit: numeric
// price, gallery, description and category specifications.
func withDefaults(it Item) Item {
	if it.PriceValue == 0 && it.Price != "" {
		it.PriceValue = parsePrice(it.Price)
	}
	if it.Price == "" && it.PriceValue > 0 {
		it.Price = fmt.Sprintf("$%s/day", strconv.FormatFloat(it.PriceValue, 'f', -1, 64))
	}
	if len(it.Images) == 0 && it.Image != "" {
		it.Images = []string{it.Image, it.Image, it.Image}
	}
	if it.Image == "" && len(it.Images) > 0 {
		it.Image = it.Images[0]
	}
	if it.Description == "" {
		it.Description = it.Name + " - Perfect for your rental needs."
	}
	if it.Specifications == nil {
		spec := specificationsFor(it.Category, it.Seats)
		it.Specifications = &spec
	}
	return it
}

func parsePrice(label string) float64 {
	s := strings.TrimPrefix(strings.TrimSpace(label), "$")
	s = strings.TrimSuffix(s, "/day")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// leadingCount reads the number in descriptors like "4 seats" or "2 person".
func leadingCount(seats string, fallback int) int {
	fields := strings.Fields(seats)
	if len(fields) == 0 {
		return fallback
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func specificationsFor(category Category, seats string) Specifications {
	switch category {
	case BikeRental:
		return Specifications{Seats: leadingCount(seats, 1), Fuel: "Human Power", Transmission: "Multi-speed", Mileage: "N/A"}
	case CameraEquipment:
		return Specifications{Seats: 1, Fuel: "Battery", Transmission: "Manual", Mileage: "N/A"}
	case TourEquipment, SurfPackage:
		return Specifications{Seats: leadingCount(seats, 1), Fuel: "N/A", Transmission: "Manual", Mileage: "N/A"}
	case TourPackages:
		return Specifications{Seats: leadingCount(seats, 1), Fuel: "N/A", Transmission: "N/A", Mileage: "N/A"}
	default:
		return Specifications{Seats: leadingCount(seats, 4), Fuel: "Gasoline", Transmission: "Automatic", Mileage: "25 MPG"}
	}
}
