// Package componente expõe o componente compartilhado: a função
// PlaceholderComponent e os adapters HTTP (net/http) do serviço.
//
// Camadas:
//
//   - domain: rótulo, frase, mensagem e contratos (sem net/http)
//   - application: casos de uso (Builder, decisão de rate limit, vagas)
//   - infra: token bucket, semáforo, stats em memória/Redis, phrasebook YAML
//   - componente (este pacote): handlers, middlewares e negociação de idioma
//
// Fluxo de uma requisição no servidor:
//
//  1. RequestLog atribui X-Request-Id e registra o acesso
//  2. Middleware extrai a chave do cliente e decide o rate limit (429)
//  3. ConcurrencyMiddleware reserva uma vaga (503 se esgotar o tempo)
//  4. Handler resolve o idioma e devolve a mensagem
package componente
