package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"componente-compartido/componente"
	"componente-compartido/componente/application"
	"componente-compartido/componente/domain"
	"componente-compartido/componente/infra"
)

type rootOptions struct {
	lang       string
	phrasebook string
	asJSON     bool
}

// newRootCmd monta a CLI: `componente [nome]` imprime a mensagem.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "componente [nome]",
		Short: "Imprime a mensagem de componente compartilhado pronto",
		Long: `Imprime "<nome> compartido listo.".

Sem nome usa o sujeito padrão do idioma ("Componente compartido listo.").
Com --lang escolhe outro idioma do phrasebook; --phrasebook carrega
frases extras de um arquivo YAML.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runRoot(cmd, opts, name)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.phrasebook, "phrasebook", "", "arquivo YAML com frases extras")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "idioma da mensagem (es, en, pt, ...)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "imprime a mensagem completa em JSON")

	cmd.AddCommand(newLocalesCmd(opts))
	return cmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions, name string) error {
	out := cmd.OutOrStdout()

	// caminho direto, sem phrasebook nem idioma
	if opts.lang == "" && opts.phrasebook == "" && !opts.asJSON {
		_, err := fmt.Fprintln(out, componente.PlaceholderComponent(name))
		return err
	}

	b, err := newBuilder(opts)
	if err != nil {
		return err
	}
	msg := b.Build(cmd.Context(), domain.Label(name), domain.ParseLocale(opts.lang))

	if !opts.asJSON {
		_, err := fmt.Fprintln(out, msg.Text)
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(componente.MessageResponse{
		Message:   msg.Text,
		Label:     string(msg.Label),
		Locale:    string(msg.Locale),
		Defaulted: msg.Defaulted,
	})
}

func newLocalesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "Lista os idiomas disponíveis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := newBuilder(opts)
			if err != nil {
				return err
			}
			for _, loc := range b.Locales() {
				p, _ := b.Phrases.Lookup(loc)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", loc, p.Render("")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newBuilder(opts *rootOptions) (application.Builder, error) {
	b := application.Builder{Phrases: domain.DefaultPhrasebook()}
	if opts.phrasebook != "" {
		book, err := infra.LoadPhrasebookYAML(opts.phrasebook)
		if err != nil {
			return b, err
		}
		b.Phrases = book
	}
	return b, nil
}
