// Package domain define os tipos do componente compartilhado: rótulo, frase,
// mensagem e os contratos usados pelas camadas de cima (phrasebook, stats,
// limiter, pool de vagas).
//
// Não depende de net/http nem de Redis. Tudo aqui é puro e testável sem infra.
package domain
