// Package application contém os casos de uso do componente compartilhado:
// construir a mensagem (Builder), decidir rate limit (Service) e adquirir
// vaga de concorrência (ConcurrencyService).
//
// Depende apenas do pacote domain e não conhece net/http.
package application
