package contact

// Offering is one counseling service a visitor can ask about. Key is the
// value submitted in the form's "service" field; Label is what the
// notification shows.
type Offering struct {
	Key   string
	Label string
}

// Catalog is the read-only, ordered list of services.
type Catalog struct {
	offerings []Offering
	byKey     map[string]string
}

// NewCatalog builds a catalog. Later duplicates of a key are ignored.
func NewCatalog(offerings ...Offering) *Catalog {
	c := &Catalog{byKey: make(map[string]string, len(offerings))}
	for _, s := range offerings {
		if _, ok := c.byKey[s.Key]; ok || s.Key == "" {
			continue
		}
		c.byKey[s.Key] = s.Label
		c.offerings = append(c.offerings, s)
	}
	return c
}

// DefaultCatalog returns the services offered on the site.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Offering{Key: "family", Label: "Family Counseling"},
		Offering{Key: "youth", Label: "Youth Intervention"},
		Offering{Key: "spiritual", Label: "Spiritual Therapy"},
		Offering{Key: "crisis", Label: "Crisis Intervention"},
		Offering{Key: "psychotherapy", Label: "Psychotherapy"},
		Offering{Key: "career", Label: "Career Counseling"},
	)
}

// Label returns the display label for key.
func (c *Catalog) Label(key string) (string, bool) {
	label, ok := c.byKey[key]
	return label, ok
}

// Keys returns the service keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.offerings))
	for i, s := range c.offerings {
		keys[i] = s.Key
	}
	return keys
}

// Offerings returns a copy of the catalog entries.
func (c *Catalog) Offerings() []Offering {
	return append([]Offering(nil), c.offerings...)
}
