package cli

import (
	"errors"
	"fmt"
	"github.com/goccy/go-yaml"
	"github.com/icinga/icinga-queryfilter/internal/config"
	"github.com/icinga/icinga-queryfilter/pkg/filter"
	"github.com/icinga/icinga-queryfilter/pkg/where"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"io"
	"strconv"
)

// quotedString is a string that is always encoded as double-quoted YAML scalar.
// Values such as null or 1 would otherwise be read back as YAML null respectively integer.
type quotedString string

// MarshalYAML implements the yaml.BytesMarshaler interface.
func (s quotedString) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

// ConditionReport is the YAML representation of a single parsed condition.
type ConditionReport struct {
	Field    quotedString `yaml:"field"`
	Operator quotedString `yaml:"operator"`
	Value    quotedString `yaml:"value"`
}

// Report is written by Run for a successfully parsed filter.
type Report struct {
	// Terms holds one entry per AND-ed term. Single conditions are reported as groups of one.
	Terms [][]ConditionReport `yaml:"terms"`
	Where string              `yaml:"where"`
	Args  []any               `yaml:"args,omitempty"`
}

// Run parses the filter of the given flags against the schema of the given config and writes a YAML Report to out.
func Run(conf *config.ConfigFile, f *config.Flags, out io.Writer, logger *zap.SugaredLogger) error {
	if f.Args.Filter == "" {
		return errors.New("missing filter expression")
	}

	driver := conf.Driver
	if f.Driver != "" {
		driver = f.Driver
	}

	if sqlx.BindType(driver) == sqlx.UNKNOWN {
		return fmt.Errorf("unsupported SQL driver %q", driver)
	}

	result, err := filter.Parse(f.Args.Filter, conf.Schema())
	if err != nil {
		logger.Errorw("Cannot parse filter", zap.String("filter", f.Args.Filter), zap.Error(err))
		return err
	}

	report := &Report{Terms: make([][]ConditionReport, 0, len(result))}
	for i, term := range result {
		conditions := make([]ConditionReport, 0, len(term.Conditions()))
		for _, c := range term.Conditions() {
			conditions = append(conditions, ConditionReport{
				Field:    quotedString(c.Field()),
				Operator: quotedString(c.Mapped()),
				Value:    quotedString(c.Value()),
			})
		}

		logger.Debugw("Parsed filter term", zap.Int("term", i), zap.Int("conditions", len(conditions)))
		report.Terms = append(report.Terms, conditions)
	}

	if f.Bind {
		query, args, err := where.Bind(result, driver)
		if err != nil {
			logger.Errorw("Cannot bind WHERE clause", zap.String("driver", driver), zap.Error(err))
			return err
		}

		report.Where, report.Args = query, args
	} else {
		report.Where = where.Inline(result)
	}

	logger.Infow("Successfully parsed filter", zap.Int("terms", len(result)), zap.Bool("bind", f.Bind))

	if err := yaml.NewEncoder(out).Encode(report); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}

	return nil
}

// Assert interface compliance.
var _ yaml.BytesMarshaler = quotedString("")
