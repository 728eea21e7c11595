package main

import (
	"carddraw-backend/cmd/songscrape/commands"
	"carddraw-backend/pkg/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
