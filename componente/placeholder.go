package componente

import "componente-compartido/componente/domain"

var spanish = domain.DefaultPhrasebook()[domain.LocaleES]

// PlaceholderComponent devolve "<name> compartido listo.".
// Com name vazio usa o sujeito padrão: "Componente compartido listo.".
func PlaceholderComponent(name string) string {
	return spanish.Render(domain.Label(name))
}
