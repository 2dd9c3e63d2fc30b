// Package regexboard embeds the regex pattern registry and match review
// workflow in a Go program, backed by an in-memory, SQLite, Redis or Valkey store.
//
//	client, _ := regexboard.New(ctx, regexboard.WithSQLite(""))
//	defer client.Close()
//
//	state, _ := client.Patterns().Create(ctx, "/lorem/i")
//	view, _ := client.Matches().View(ctx, regexboard.ModeApproval, state.Patterns[0].ID)
//	_, _ = client.Matches().Approve(ctx, view.Selected.ID, view.Pending[0].Text)
//
// Every pattern change recomputes the match list of the stored document.
// Approvals survive recomputation for each (pattern ID, matched text) pair
// the pattern still produces.
package regexboard
