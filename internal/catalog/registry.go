package catalog

// Category names a lookup table whose rows are shared by many games.
type Category string

const (
	CategoryDeveloper    Category = "developer"
	CategoryFranchise    Category = "franchise"
	CategoryPublisher    Category = "publisher"
	CategoryRating       Category = "rating"
	CategoryGenre        Category = "genre"
	CategoryRegion       Category = "region"
	CategoryManufacturer Category = "manufacturer"
)

// Categories lists every lookup category in table creation order.
var Categories = []Category{
	CategoryDeveloper,
	CategoryFranchise,
	CategoryPublisher,
	CategoryRating,
	CategoryGenre,
	CategoryRegion,
	CategoryManufacturer,
}

// Entry is one row of a lookup table.
type Entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Registry assigns surrogate IDs to distinct values of one category. The first
// value seen gets ID 1, the next distinct value ID 2, and so on. IDs are never
// reassigned.
type Registry struct {
	category Category
	ids      map[string]int64
	entries  []Entry
}

// NewRegistry returns an empty registry for the category.
func NewRegistry(category Category) *Registry {
	return &Registry{category: category, ids: make(map[string]int64)}
}

// Category reports which lookup table the registry backs.
func (r *Registry) Category() Category {
	return r.category
}

// Resolve returns the ID for value, assigning the next one when the value is
// new. A nil or empty value resolves to nil and leaves the table untouched.
func (r *Registry) Resolve(value *string) *int64 {
	if value == nil || *value == "" {
		return nil
	}
	if id, ok := r.ids[*value]; ok {
		return &id
	}
	id := int64(len(r.entries) + 1)
	r.ids[*value] = id
	r.entries = append(r.entries, Entry{ID: id, Name: *value})
	return &id
}

// Lookup returns the ID already assigned to value without assigning one.
func (r *Registry) Lookup(value string) (int64, bool) {
	id, ok := r.ids[value]
	return id, ok
}

// Len returns the number of distinct values seen.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the table in ID order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Registries holds one Registry per Category. Each has its own ID space.
type Registries struct {
	Developer    *Registry
	Franchise    *Registry
	Publisher    *Registry
	Rating       *Registry
	Genre        *Registry
	Region       *Registry
	Manufacturer *Registry
}

// NewRegistries builds an empty registry for every category.
func NewRegistries() *Registries {
	return &Registries{
		Developer:    NewRegistry(CategoryDeveloper),
		Franchise:    NewRegistry(CategoryFranchise),
		Publisher:    NewRegistry(CategoryPublisher),
		Rating:       NewRegistry(CategoryRating),
		Genre:        NewRegistry(CategoryGenre),
		Region:       NewRegistry(CategoryRegion),
		Manufacturer: NewRegistry(CategoryManufacturer),
	}
}

// For returns the registry backing category, or nil for an unknown category.
func (r *Registries) For(category Category) *Registry {
	switch category {
	case CategoryDeveloper:
		return r.Developer
	case CategoryFranchise:
		return r.Franchise
	case CategoryPublisher:
		return r.Publisher
	case CategoryRating:
		return r.Rating
	case CategoryGenre:
		return r.Genre
	case CategoryRegion:
		return r.Region
	case CategoryManufacturer:
		return r.Manufacturer
	default:
		return nil
	}
}
