package reconcile

import (
	"fmt"
	"sort"

	"entity-display/internal/assignment"
	"entity-display/internal/diagnostic"
	"entity-display/internal/field"
	"entity-display/internal/match"
	"entity-display/internal/region"
)

// Result is the reconciled state of a display.
type Result struct {
	Content *assignment.Map
	Hidden  *assignment.HiddenSet
	Changes []Change
}

// Engine reconciles assignments against a region catalog and, when Fields is
// set, against the field catalog of the display.
type Engine struct {
	// Fields enables the add and remove rules. Without it only region
	// membership is fixed.
	Fields *field.Catalog

	// Validate turns an assignment of a field unknown to Fields into a
	// ConfigurationError instead of silently removing it.
	Validate bool
}

// Reconcile fixes region membership only. old may be nil.
func Reconcile(oldCatalog, newCatalog *region.Catalog, current *assignment.Map) (*assignment.Map, error) {
	res, err := Engine{}.Reconcile(oldCatalog, newCatalog, current, nil)
	if err != nil {
		return nil, err
	}

	return res.Content, nil
}

// Reconcile returns new content and hidden sets that are consistent with
// newCatalog. oldCatalog is the catalog the inputs were valid for and may be
// nil; it only decides the order in which rehomed fields land.
func (e Engine) Reconcile(
	oldCatalog, newCatalog *region.Catalog,
	content *assignment.Map,
	hidden *assignment.HiddenSet,
) (*Result, error) {
	if err := e.validate(newCatalog, content, hidden); err != nil {
		return nil, err
	}

	r := &run{
		fields:  e.Fields,
		old:     oldCatalog,
		new:     newCatalog,
		content: content.Clone(),
		hidden:  hidden.Clone(),
	}

	r.moveHidden()
	r.dropUnmanaged()
	r.defaultMissingRegions()
	r.rehome()
	r.addNewFields()

	return &Result{Content: r.content, Hidden: r.hidden, Changes: r.changes}, nil
}

func (e Engine) validate(newCatalog *region.Catalog, content *assignment.Map, hidden *assignment.HiddenSet) error {
	var diags diagnostic.Diagnostics

	if newCatalog.Len() == 0 {
		diags.AddError("empty_catalog", "the target region catalog declares no regions", "", "")
	}

	content.Range(func(name string, _ *assignment.Component) bool {
		switch {
		case name == "":
			diags.AddError("empty_field_name", "content holds an assignment without a field name", "content", "")
		case e.Validate && e.Fields != nil && !e.Fields.Has(name):
			diags.AddError("unknown_field", fmt.Sprintf("field %q is not defined", name), "content", name).
				WithSuggestions(match.Suggest(name, e.Fields.Names(), match.DefaultLimit))
		}

		return true
	})

	for _, name := range hidden.Names() {
		if name == "" {
			diags.AddError("empty_field_name", "hidden lists a field without a name", "hidden", "")
		}
	}

	return diagnostic.NewConfigurationError(&diags)
}

type run struct {
	fields  *field.Catalog
	old     *region.Catalog
	new     *region.Catalog
	content *assignment.Map
	hidden  *assignment.HiddenSet
	changes []Change
}

func (r *run) record(c Change) {
	r.changes = append(r.changes, c)
}

// moveHidden moves components that ask to be hidden into the hidden set.
func (r *run) moveHidden() {
	for _, name := range r.content.Names() {
		c := r.content.Get(name)
		if c == nil {
			c = &assignment.Component{}
			r.content.Set(name, c)
		}

		if !c.IsHidden() {
			continue
		}

		r.content.Delete(name)
		r.hidden.Add(name)
		r.record(Change{Kind: ChangeHidden, Field: name, From: c.Region, To: assignment.HiddenRegion})
	}
}

// dropUnmanaged removes fields that no longer exist or are not configurable.
// A field both assigned and hidden stays assigned.
func (r *run) dropUnmanaged() {
	if r.fields != nil {
		for _, name := range r.content.Names() {
			if reason, drop := r.unmanaged(name); drop {
				from := r.content.Get(name).Region
				r.content.Delete(name)
				r.record(Change{Kind: ChangeRemoved, Field: name, From: from, Reason: reason})
			}
		}

		for _, name := range r.hidden.Names() {
			if reason, drop := r.unmanaged(name); drop {
				r.hidden.Remove(name)
				r.record(Change{Kind: ChangeRemoved, Field: name, From: assignment.HiddenRegion, Reason: reason})
			}
		}
	}

	for _, name := range r.hidden.Names() {
		if r.content.Has(name) {
			r.hidden.Remove(name)
		}
	}
}

func (r *run) unmanaged(name string) (string, bool) {
	e, ok := r.fields.Lookup(name)

	switch {
	case !ok:
		return "field no longer exists", true
	case !e.Configurable:
		return "field is not configurable", true
	default:
		return "", false
	}
}

// defaultMissingRegions gives never-placed components the default region.
func (r *run) defaultMissingRegions() {
	def := r.new.Default()

	r.content.Range(func(name string, c *assignment.Component) bool {
		if c.Region == "" {
			c.Region = def
			r.record(Change{Kind: ChangeDefaulted, Field: name, To: def, Weight: c.WeightValue()})
		}

		return true
	})
}

type stray struct {
	name     string
	c        *assignment.Component
	oldIndex int
	order    int
}

// rehome appends components sitting in retired regions to the default
// region, ordered by their old region, then weight, then map order.
func (r *run) rehome() {
	var strays []stray

	order := 0

	r.content.Range(func(name string, c *assignment.Component) bool {
		if !r.new.Has(c.Region) {
			idx := r.old.Index(c.Region)
			if idx < 0 {
				idx = r.old.Len()
			}

			strays = append(strays, stray{name: name, c: c, oldIndex: idx, order: order})
		}

		order++

		return true
	})

	if len(strays) == 0 {
		return
	}

	sort.SliceStable(strays, func(i, j int) bool {
		a, b := strays[i], strays[j]
		if a.oldIndex != b.oldIndex {
			return a.oldIndex < b.oldIndex
		}

		if wa, wb := a.c.WeightValue(), b.c.WeightValue(); wa != wb {
			return wa < wb
		}

		return a.order < b.order
	})

	def := r.new.Default()
	next := r.nextWeight(def)

	for _, s := range strays {
		from := s.c.Region
		s.c.Region = def
		s.c.Weight = assignment.WeightOf(next)
		r.record(Change{Kind: ChangeRehomed, Field: s.name, From: from, To: def, Weight: next})
		next++
	}
}

// addNewFields places configurable fields that are neither assigned nor
// hidden. Invisible extra fields start hidden.
func (r *run) addNewFields() {
	if r.fields == nil {
		return
	}

	def := r.new.Default()

	for _, e := range r.fields.Entries() {
		if !e.Configurable || r.content.Has(e.Name) || r.hidden.Has(e.Name) {
			continue
		}

		if e.Extra && !e.Visible {
			r.hidden.Add(e.Name)
			r.record(Change{Kind: ChangeHidden, Field: e.Name, To: assignment.HiddenRegion, Reason: "extra field is hidden by default"})

			continue
		}

		w := r.nextWeight(def)
		r.content.Set(e.Name, &assignment.Component{Region: def, Weight: assignment.WeightOf(w)})
		r.record(Change{Kind: ChangeAdded, Field: e.Name, To: def, Weight: w})
	}
}

func (r *run) nextWeight(regionID string) int {
	if maxW, ok := r.content.MaxWeight(regionID); ok {
		return maxW + 1
	}

	return 0
}
