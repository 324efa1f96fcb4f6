package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errInvalid makes the process exit non-zero after the validation result has
// been printed.
var errInvalid = errors.New("inputs failed validation")

func (a *app) listCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := a.reg.List()
			if category != "" {
				filtered := descs[:0]
				for _, d := range descs {
					if strings.EqualFold(d.Category, category) {
						filtered = append(filtered, d)
					}
				}
				descs = filtered
			}
			return a.out.Descriptors(descs)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list calculators in this category")
	return cmd
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <calculator>",
		Short: "Show a calculator's inputs, outputs and examples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.descriptor(args[0])
			if err != nil {
				return err
			}
			return a.out.Descriptor(d)
		},
	}
}

// inputSource is the shared -i/--example flag pair.
type inputSource struct {
	file    string
	example string
}

func (s *inputSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "inputs", "i", "", `inputs file (YAML or JSON, "-" for stdin)`)
	cmd.Flags().StringVar(&s.example, "example", "", "use the inputs of a shipped example")
}

func (a *app) loadInputs(id string, s inputSource, required bool) (map[string]any, error) {
	switch {
	case s.file != "" && s.example != "":
		return nil, errors.New("--inputs and --example are mutually exclusive")
	case s.example != "":
		d, err := a.descriptor(id)
		if err != nil {
			return nil, err
		}
		for _, ex := range d.Examples {
			if ex.Name == s.example {
				return ex.Inputs, nil
			}
		}
		return nil, fmt.Errorf("%s has no example %q", id, s.example)
	case s.file != "":
		return config.LoadInputs(s.file, a.stdin)
	case required:
		return nil, errors.New("one of --inputs or --example is required")
	}
	return map[string]any{}, nil
}

func (a *app) runCmd() *cobra.Command {
	var src inputSource
	cmd := &cobra.Command{
		Use:   "run <calculator>",
		Short: "Validate inputs and run a calculator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			d, err := a.descriptor(id)
			if err != nil {
				return err
			}
			raw, err := a.loadInputs(id, src, true)
			if err != nil {
				return err
			}
			res, err := a.svc.Evaluate(cmd.Context(), id, raw)
			if errors.Is(err, registry.ErrInvalidInputs) {
				if werr := a.out.Validation(res.Validation); werr != nil {
					return werr
				}
				return errInvalid
			}
			if err != nil {
				return err
			}
			return a.out.Result(res, d)
		},
	}
	src.register(cmd)
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var src inputSource
	cmd := &cobra.Command{
		Use:   "validate <calculator>",
		Short: "Validate inputs without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.loadInputs(args[0], src, true)
			if err != nil {
				return err
			}
			res, err := a.svc.Validate(args[0], raw)
			if err != nil {
				return err
			}
			if err := a.out.Validation(res); err != nil {
				return err
			}
			if !res.IsValid {
				return errInvalid
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	var src inputSource
	cmd := &cobra.Command{
		Use:   "check <calculator> <field> <value>",
		Short: "Quick-validate one field, optionally against other inputs",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.loadInputs(args[0], src, false)
			if err != nil {
				return err
			}
			var value any
			if err := yaml.Unmarshal([]byte(args[2]), &value); err != nil {
				value = args[2]
			}
			res, err := a.svc.ValidateField(args[0], args[1], value, raw)
			if err != nil {
				return err
			}
			if err := a.out.Field(args[1], res); err != nil {
				return err
			}
			if !res.IsValid {
				return errInvalid
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

func (a *app) examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples [calculator...]",
		Short: "Run the shipped examples of some or all calculators",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.svc.Examples(cmd.Context(), args...)
			if runs == nil && err != nil {
				return err
			}
			if werr := a.out.Examples(runs); werr != nil {
				return werr
			}
			return err
		},
	}
}
