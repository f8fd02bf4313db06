package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ganttline/internal/domain"
)

// resolveProject resolves a --project flag value, which can be a short ID
// (any case) or a full UUID.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("--project is required")
	}
	return app.Projects.Resolve(ctx, input)
}

// resolveItemArg parses a positional tag:id argument.
func resolveItemArg(arg string) (domain.ItemRef, error) {
	ref, err := domain.ParseItemRef(arg)
	if err != nil {
		return domain.ItemRef{}, err
	}
	return ref, nil
}
