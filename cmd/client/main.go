// Command client talks to a running DeckBox server.
//
// Import a decklist:
//
//	client -server http://localhost:8080 -user 1 -file deck.txt
//
// Take cards from a group-mate's box into one of your decks:
//
//	client -server http://localhost:8080 -user 1 -take-unit 42 -deck 7 -qty 2
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"DeckBox/internal/cli/api"
)

func main() {
	var (
		server = flag.String("server", "http://localhost:8080", "DeckBox server URL")
		userID = flag.Int64("user", 0, "acting user id")
		file   = flag.String("file", "", "decklist file (defaults to stdin)")

		takeUnit = flag.Int64("take-unit", 0, "inventory unit id to take from a group-mate's box")
		deckID   = flag.Int64("deck", 0, "destination deck id (with -take-unit)")
		qty      = flag.Int("qty", 1, "number of copies to take (with -take-unit)")
	)
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "missing -user")
		os.Exit(2)
	}

	base := strings.TrimRight(*server, "/")
	if *takeUnit > 0 {
		runTransfer(base, *userID, *takeUnit, *deckID, *qty)
		return
	}
	runImport(base, *userID, *file)
}

func runImport(base string, userID int64, file string) {
	var text []byte
	var err error
	if file == "" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(file)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "read decklist:", err)
		os.Exit(1)
	}

	resp, body, err := api.PostText(base+"/api/import", string(text), userID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "request failed:", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "server returned %d: %s\n", resp.StatusCode, body)
		os.Exit(1)
	}
	fmt.Println(string(body))
}

func runTransfer(base string, userID, unitID, deckID int64, qty int) {
	if deckID <= 0 {
		fmt.Fprintln(os.Stderr, "missing -deck")
		os.Exit(2)
	}

	resp, body, err := api.PostJSON(base+"/api/transfer", map[string]any{
		"source_unit_id": unitID,
		"deck_id":        deckID,
		"quantity":       qty,
	}, userID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "request failed:", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "server returned %d: %s\n", resp.StatusCode, body)
		os.Exit(1)
	}
	fmt.Println(string(body))
}
