// Package studentdir provides a Go client that loads a remote student
// collection and searches it in process.
//
// Matching is a case-insensitive literal substring test over name, email
// and major. Every match carries its fields split into highlighted and
// plain segments whose concatenation equals the original text.
//
//	client, _ := studentdir.New(ctx,
//	    studentdir.WithEndpoint("https://example.mockapi.io/users"),
//	    studentdir.WithTimeout(10*time.Second),
//	)
//	defer client.Close()
//
//	if _, err := client.Load(ctx); err != nil {
//	    var le *studentdir.LoadError
//	    if errors.As(err, &le) {
//	        fmt.Println(le.Message)
//	    }
//	    state, _ := client.Retry(ctx)
//	    _ = state
//	}
//	matches, _ := client.Search(ctx, "ana")
//
// An optional Valkey or Redis snapshot cache keeps the last successful
// collection between processes:
//
//	client, _ := studentdir.New(ctx, studentdir.WithValkey("localhost:6379", ""))
package studentdir
