package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ledgerlab/powchain/ledger"
)

func printChain(bc *ledger.Blockchain) {
	difficulty := bc.Difficulty()

	var rows [][]pterm.Panel
	for _, b := range bc.Blocks() {
		rows = append(rows, []pterm.Panel{{Data: blockBox(b, difficulty)}})
	}

	pterm.DefaultPanel.WithPanels(rows).Render()
}

func blockBox(b ledger.Block, difficulty uint) string {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTopPadding(1).WithBottomPadding(1)

	title := "Block " + strconv.Itoa(b.Index)
	if b.Index == 0 {
		title += " (genesis)"
	}

	return pbox.WithTitle(pterm.LightCyan(title)).WithTitleTopLeft().Sprintf(
		"Timestamp: %d\nRecords: %s\nPrevious Digest: %s\nNonce: %d\nDigest: %s",
		b.Timestamp,
		strings.Join(b.Records, ", "),
		b.PrevDigest,
		b.Nonce,
		styledDigest(b.Digest, difficulty),
	)
}

// styledDigest highlights the proof-of-work prefix of a mined digest.
func styledDigest(digest string, difficulty uint) string {
	prefix := strings.Repeat("0", int(difficulty))
	if !strings.HasPrefix(digest, prefix) {
		return digest
	}
	return pterm.LightGreen(prefix) + digest[len(prefix):]
}
