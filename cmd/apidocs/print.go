package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/apidocs/oas3"
)

func (a *app) printCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "print [category]",
		Short: "Print the resource listing, or the API declaration of a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, h, err := a.load()
			if err != nil {
				return err
			}

			var doc any
			if len(args) == 0 {
				doc, err = h.Index()
			} else {
				doc, err = h.Detail(args[0])
			}
			if err != nil {
				return err
			}

			var data []byte
			if asYAML {
				data, err = yaml.Marshal(doc)
			} else {
				data, err = json.MarshalIndent(doc, "", "  ")
				data = append(data, '\n')
			}
			if err != nil {
				return err
			}

			_, err = a.stdout.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	return cmd
}

func (a *app) openapiCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the API as an OpenAPI 3 document",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, h, err := a.load()
			if err != nil {
				return err
			}

			def, err := h.Definition()
			if err != nil {
				return err
			}

			doc, err := oas3.Translate(def)
			if err != nil {
				return err
			}

			var data []byte
			if asYAML {
				data, err = oas3.MarshalYAML(doc)
			} else {
				data, err = json.MarshalIndent(doc, "", "  ")
				data = append(data, '\n')
			}
			if err != nil {
				return fmt.Errorf("encoding openapi document: %w", err)
			}

			_, err = a.stdout.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	return cmd
}
