package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/hunter-yen/hunter-server/internal/event"
)

const deadLetterFile = "event_deadletter.jsonl"

type DeadLettersCommand struct{}

func (c *DeadLettersCommand) Name() string {
	return "deadletters"
}

func (c *DeadLettersCommand) Description() string {
	return "List events that exhausted their publish retries (default: $LOG_DIR/event_deadletter.jsonl)"
}

func (c *DeadLettersCommand) Run(args []string) error {
	path := filepath.Join(getEnv("LOG_DIR", ""), deadLetterFile)
	if len(args) > 0 {
		path = args[0]
	}

	PrintHeader(fmt.Sprintf("Dead Letters (%s)", path))

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		PrintSuccess("No dead-letter file, nothing failed")
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := event.ReadDeadLetters(f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		PrintSuccess("Dead-letter file is empty")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tATTEMPTS\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Event.Type, e.Attempts, e.LastError)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	PrintWarning("%d event(s) were not delivered", len(entries))
	return nil
}
