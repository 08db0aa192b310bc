// Package infra contém as implementações concretas dos contratos do domain.
//
//   - Store: token bucket por cliente com golang.org/x/time/rate
//   - ChanPool: semáforo em channel para o limite de concorrência
//   - MemoryStatsStore / RedisStatsStore: contadores de eventos
//   - LoadPhrasebookYAML: frases extras vindas de arquivo
package infra
