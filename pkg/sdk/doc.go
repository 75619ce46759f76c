// Package notedex provides an embedded Go client for the notedex workspace
// and note store backed by Valkey or Redis with search modules.
//
// The client wires the full service stack over a direct database connection,
// so no HTTP server is needed:
//
//	client, _ := notedex.New(ctx, notedex.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	ws, _ := client.Workspaces().Create(ctx, "alice", "reading list")
//	_, _ = client.Notes().Create(ctx, "alice", ws.ID, notedex.NoteCreate{
//	    Kind:   "content",
//	    Tags:   []string{"books"},
//	    Fields: []notedex.Field{{Kind: "title", Content: "The Go Programming Language"}},
//	})
//	hits, _ := client.Search().Search(ctx, "alice", ws.ID, notedex.Query{Text: "golang book"})
//
// Semantic ranking needs an Embedder (see WithEmbedder). Without one, notes
// are stored without vectors and structural search still works; semantic
// queries return ErrEmbeddingUnavailable.
package notedex
