package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kapu/sheos-insight-go/internal/domain"
)

func newRunCmd(load loader) *cobra.Command {
	var (
		profilePath string
		language    string
		example     bool
	)

	cmd := &cobra.Command{
		Use:   "run <feature>",
		Short: "Run one insight request and print its JSON envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feature, ok := domain.ParseFeature(args[0])
			if !ok {
				return fmt.Errorf("unknown feature %q", args[0])
			}

			payload, err := readProfile(cmd.InOrStdin(), profilePath, feature, example)
			if err != nil {
				return err
			}
			if language != "" {
				if payload, err = withLanguage(payload, language); err != nil {
					return err
				}
			}

			return runInsight(cmd.Context(), load, cmd.OutOrStdout(), feature, payload)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", `Profile JSON file, or "-" for stdin`)
	cmd.Flags().StringVar(&language, "language", "", "Language the answer should be written in")
	cmd.Flags().BoolVar(&example, "example", false, "Use the built-in sample profile")
	return cmd
}

func runInsight(ctx context.Context, load loader, out io.Writer, feature domain.Feature, payload []byte) error {
	if ctx == nil {
		ctx = context.Background()
	}

	container, err := load(ctx, "stderr")
	if err != nil {
		return err
	}
	defer container.Close()
	defer container.Logger.Sync()

	envelope, err := container.Registry.Execute(ctx, feature.String(), payload)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope)
}

func readProfile(stdin io.Reader, path string, feature domain.Feature, example bool) ([]byte, error) {
	switch {
	case example:
		if path != "" {
			return nil, fmt.Errorf("--example and --profile are mutually exclusive")
		}
		profile, ok := domain.ExampleProfile(feature)
		if !ok {
			return nil, fmt.Errorf("no sample profile for %s", feature)
		}
		return json.Marshal(profile)
	case path == "-":
		return io.ReadAll(stdin)
	case path != "":
		return os.ReadFile(path)
	default:
		return nil, fmt.Errorf("a profile is required: pass --profile <file|-> or --example")
	}
}

// withLanguage sets the profile's language field, replacing any existing one.
func withLanguage(payload []byte, language string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("profile must be a JSON object: %w", err)
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}

	lang, err := json.Marshal(strings.TrimSpace(language))
	if err != nil {
		return nil, err
	}
	fields["language"] = lang
	return json.Marshal(fields)
}
