package main

import (
	"fmt"

	"github.com/hunter-yen/hunter-server/internal/gamedata"
)

type ValidateContentCommand struct{}

func (c *ValidateContentCommand) Name() string {
	return "validate-content"
}

func (c *ValidateContentCommand) Description() string {
	return "Validate a game content file against the schema and its references"
}

func (c *ValidateContentCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("content file path required")
	}

	PrintHeader(fmt.Sprintf("Validating %s", args[0]))
	content, err := gamedata.LoadFile(args[0])
	if err != nil {
		return err
	}

	PrintSuccess("Content v%d is valid: %d items, %d tasks, %d pools",
		content.Version,
		len(content.Catalog.Items),
		len(content.Catalog.Tasks),
		len(content.Catalog.DropPools))
	return nil
}
