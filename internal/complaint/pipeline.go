package complaint

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/a3tai/ncrp-intake/internal/extract"
)

// Source is the decoded text of a complaint document.
type Source interface {
	PlainText() string
	LayoutText() string
	AllTables() [][][]string
}

// corpus holds the decoded inputs and the values resolved so far.
type corpus struct {
	plain  string
	layout string
	tables []extract.Table
	dates  []string
	values map[Field]string
}

func (c *corpus) get(f Field) string { return c.values[f] }

// step resolves one field. It may read only the fields listed in reads.
type step struct {
	field   Field
	reads   []Field
	resolve func(c *corpus) string
}

// PipelineConfig configures a Pipeline.
type PipelineConfig struct {
	Refs             RefGenerator
	Logger           log.Interface
	PermissiveAmount bool
}

// Pipeline turns a decoded document into a Record by running resolution
// steps in a fixed order.
type Pipeline struct {
	steps  []step
	logger log.Interface
}

// NewPipeline builds the default pipeline.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if cfg.Refs == nil {
		cfg.Refs = RandomRefs
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Log
	}
	steps := defaultSteps(cfg)
	if err := validateOrder(steps); err != nil {
		return nil, err
	}
	return &Pipeline{steps: steps, logger: cfg.Logger}, nil
}

// validateOrder rejects step lists where a step reads a field that no
// earlier step resolves.
func validateOrder(steps []step) error {
	seen := make(map[Field]bool, len(steps))
	for _, s := range steps {
		for _, dep := range s.reads {
			if !seen[dep] {
				return fmt.Errorf("step %s reads %s before it is resolved", s.field, dep)
			}
		}
		if seen[s.field] {
			return fmt.Errorf("field %s resolved twice", s.field)
		}
		seen[s.field] = true
	}
	return nil
}

// Resolve extracts a record from the source. A nil source or a failing step
// leaves fields empty; Resolve never fails. Cancelling ctx skips the
// remaining steps.
func (p *Pipeline) Resolve(ctx context.Context, src Source) Record {
	c := &corpus{values: make(map[Field]string, len(p.steps))}
	if src != nil {
		c.plain = src.PlainText()
		c.layout = src.LayoutText()
		c.tables = src.AllTables()
	}
	c.dates = extract.FindAllDates(c.plain)

	for i, s := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.WithError(err).WithField("skipped", len(p.steps)-i).Warn("field resolution cancelled")
			break
		}
		c.values[s.field] = p.run(c, s)
	}

	var rec Record
	for f, v := range c.values {
		rec.set(f, v)
	}
	return rec
}

func (p *Pipeline) run(c *corpus, s step) (value string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("field", string(s.field)).WithField("panic", fmt.Sprint(r)).
				Error("field resolution failed")
			value = ""
		}
	}()
	return s.resolve(c)
}

func defaultSteps(cfg PipelineConfig) []step {
	amount := extract.FindAmount
	if cfg.PermissiveAmount {
		amount = extract.FindAmountPermissive
	}

	return []step{
		{field: FieldAckNo, resolve: func(c *corpus) string {
			return extract.FindAckNumber(c.plain)
		}},
		{field: FieldIncidentDate, resolve: func(c *corpus) string {
			return extract.FindDateNearKeyword(c.plain, extract.IncidentDateKeywords, c.dates)
		}},
		{field: FieldIncidentTime, resolve: func(c *corpus) string {
			return extract.FindTimeNearKeyword(c.plain, extract.IncidentTimeKeywords)
		}},
		{field: FieldComplaintDate, reads: []Field{FieldIncidentDate}, resolve: func(c *corpus) string {
			pool := c.dates
			if len(pool) > 0 && c.get(FieldIncidentDate) == pool[0] {
				pool = pool[1:]
			}
			return extract.FindDateNearKeyword(c.plain, extract.ComplaintDateKeywords, pool)
		}},
		{field: FieldCategory, resolve: func(c *corpus) string {
			if v := extract.FindInLayoutThenText(c.layout, c.plain, extract.CategoryKeywords); v != "" {
				return v
			}
			return extract.ClassifyCategory(c.plain)
		}},
		{field: FieldSubCategory, reads: []Field{FieldCategory}, resolve: func(c *corpus) string {
			if v := extract.FindInLayoutThenText(c.layout, c.plain, extract.SubCategoryKeywords); v != "" {
				return v
			}
			return extract.SubCategoryAfter(c.plain, c.get(FieldCategory))
		}},
		{field: FieldComplainantName, resolve: func(c *corpus) string {
			return extract.FindInLayoutThenText(c.layout, c.plain, extract.NameKeywords)
		}},
		{field: FieldComplainantPhone, resolve: func(c *corpus) string {
			return extract.FindInLayoutThenText(c.layout, c.plain, extract.PhoneKeywords)
		}},
		{field: FieldComplainantEmail, resolve: func(c *corpus) string {
			return extract.FindInLayoutThenText(c.layout, c.plain, extract.EmailKeywords)
		}},
		{field: FieldComplainantAddr, resolve: func(c *corpus) string {
			return extract.FindAddress(c.layout, c.plain)
		}},
		{field: FieldSuspectPhone, reads: []Field{FieldComplainantPhone}, resolve: func(c *corpus) string {
			return extract.FindSuspectPhone(c.tables, c.get(FieldComplainantPhone))
		}},
		{field: FieldSuspectIdentifier, reads: []Field{FieldComplainantEmail}, resolve: func(c *corpus) string {
			return extract.FindSuspectIdentifier(c.tables, c.layout, c.get(FieldComplainantEmail))
		}},
		{field: FieldPlatform, reads: []Field{FieldSuspectIdentifier}, resolve: func(c *corpus) string {
			return extract.InferPlatform(c.layout, c.get(FieldSuspectIdentifier))
		}},
		{field: FieldTotalLoss, resolve: func(c *corpus) string {
			return amount(c.plain)
		}},
		{field: FieldAdditionalDetails, resolve: func(c *corpus) string {
			return extract.FindAdditionalInfo(c.plain)
		}},
		{field: FieldCSRNo, resolve: func(*corpus) string {
			return cfg.Refs.NextRef()
		}},
	}
}
