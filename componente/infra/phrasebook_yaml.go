package infra

import (
	"fmt"
	"io"
	"os"

	"componente-compartido/componente/domain"

	"gopkg.in/yaml.v3"
)

// phrasebookFile é o formato do arquivo:
//
//	locales:
//	  fr:
//	    subject: Composant
//	    suffix: partagé prêt.
type phrasebookFile struct {
	Locales map[string]struct {
		Subject string `yaml:"subject"`
		Suffix  string `yaml:"suffix"`
	} `yaml:"locales"`
}

// LoadPhrasebookYAML lê o arquivo e sobrepõe as frases ao phrasebook embutido.
func LoadPhrasebookYAML(path string) (domain.StaticPhrasebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open phrasebook: %w", err)
	}
	defer f.Close()

	book, err := DecodePhrasebookYAML(f)
	if err != nil {
		return nil, fmt.Errorf("phrasebook %s: %w", path, err)
	}
	return book, nil
}

func DecodePhrasebookYAML(r io.Reader) (domain.StaticPhrasebook, error) {
	var file phrasebookFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	book := domain.DefaultPhrasebook()
	for tag, entry := range file.Locales {
		loc := domain.ParseLocale(tag)
		if loc == "" {
			return nil, fmt.Errorf("empty locale tag")
		}
		p := domain.Phrase{Subject: entry.Subject, Suffix: entry.Suffix}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("locale %s: %w", loc, err)
		}
		book[loc] = p
	}
	return book, nil
}
