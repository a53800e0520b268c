package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayweave/internal/domain"
)

// resolvePrefix maps a full ID or a unique ID prefix (as printed by list
// commands) to the full ID.
func resolvePrefix[T any](input, kind string, items []T, idOf func(T) string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, it := range items {
		id := idOf(it)
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveEventID(ctx context.Context, app *App, input string) (string, error) {
	events, err := app.Events.List(ctx)
	if err != nil {
		return "", err
	}
	return resolvePrefix(input, "event", events, func(e *domain.Event) string { return e.ID })
}

func resolveTodoID(ctx context.Context, app *App, input string) (string, error) {
	todos, err := app.Todos.List(ctx, true)
	if err != nil {
		return "", err
	}
	return resolvePrefix(input, "todo", todos, func(t *domain.Todo) string { return t.ID })
}

func resolveTemplateID(ctx context.Context, app *App, input string) (string, error) {
	templates, err := app.Templates.List(ctx)
	if err != nil {
		return "", err
	}
	return resolvePrefix(input, "template", templates, func(t *domain.Template) string { return t.ID })
}
