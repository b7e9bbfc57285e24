// Package courier provides a resilient dispatch engine for transactional
// email: a task submitted once is delivered by exactly one of several
// interchangeable providers, with automatic retries, per-provider circuit
// breaking, ordered fallback, idempotent submission, and a rate-limited
// admission queue.
//
// # Basic Usage
//
//	providers := []courier.Provider{
//		courier.NewProviderFunc("primary", sendViaPrimary),
//		courier.NewProviderFunc("backup", sendViaBackup),
//	}
//
//	client, err := courier.New(providers,
//		courier.WithRetry(3, 100*time.Millisecond),
//		courier.WithRateLimit(10, time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Send(context.Background(), &courier.Task{
//		ID:        "welcome-42",
//		Recipient: "user@example.com",
//		Subject:   "Welcome",
//		Body:      "Welcome aboard!",
//	})
//
// Submitting the same task id twice contacts a provider only once; the
// second call returns a result marked Duplicate. Submissions beyond the
// admission budget are queued and delivered as capacity frees up, and
// Send blocks until the queued task reaches a terminal state.
//
// # Supported Providers
//
//   - AWS SES
//   - SendGrid
//   - Mailgun
//   - Generic SMTP
//   - Any function wrapped with NewProviderFunc
//
// # Features
//
//   - Ordered provider fallback with sticky preference for the last
//     provider that succeeded
//   - Automatic retries with exponential backoff
//   - Per-provider circuit breaker with half-open probing
//   - Idempotent submission keyed by task id
//   - Rate-limited admission with a FIFO pending queue
//   - Distributed tracing with OpenTelemetry
//   - Thread-safe operations
package courier
