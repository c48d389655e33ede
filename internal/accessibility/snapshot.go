package accessibility

import (
	"fmt"
	"log/slog"
	"strings"
)

// Application is one running application and its top-level window handles, as
// reported by a Platform.
type Application struct {
	Name      string
	PID       int32
	Frontmost bool
	Windows   []Node
}

// Platform supplies the roots a snapshot starts from. It is the only
// platform-facing surface beyond the Accessor itself.
type Platform interface {
	Accessor() Accessor
	Applications() ([]Application, error)
	SystemRoot() (Node, error)
}

// AppTrees holds the serialized window trees of one application.
type AppTrees struct {
	AppName    string   `json:"app_name"`
	PID        int32    `json:"pid"`
	Frontmost  bool     `json:"frontmost"`
	HasWindows bool     `json:"has_windows"`
	Windows    []Record `json:"windows"`
}

// Snapshot is a full accessibility capture across all applications.
type Snapshot struct {
	FrontmostApplication string     `json:"frontmost_application"`
	Windows              []AppTrees `json:"windows"`
}

// Capture walks every application window and assembles a Snapshot. A window
// whose subtree cannot be read is skipped; only the total absence of any
// usable window is an error. Each call rebuilds from the platform at call
// time, nothing is cached between captures.
func Capture(p Platform, logger *slog.Logger, opts ...BuildOption) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	apps, err := p.Applications()
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	if len(apps) == 0 {
		return nil, fmt.Errorf("no visible windows found in the system")
	}

	frontmost := apps[0]
	for _, app := range apps {
		if app.Frontmost {
			frontmost = app
			break
		}
	}

	builder := NewBuilder(p.Accessor(), logger)
	snap := &Snapshot{FrontmostApplication: frontmost.Name}
	anyWindows := false
	for _, app := range apps {
		if len(app.Windows) == 0 {
			continue
		}
		trees := make([]Record, 0, len(app.Windows))
		for _, window := range app.Windows {
			trees = append(trees, ToRecord(builder.Build(window, opts...)))
		}
		if len(trees) > 0 {
			anyWindows = true
		}
		snap.Windows = append(snap.Windows, AppTrees{
			AppName:    app.Name,
			PID:        app.PID,
			Frontmost:  app.Frontmost,
			HasWindows: len(app.Windows) > 0,
			Windows:    trees,
		})
	}

	if !anyWindows {
		var lines []string
		for _, app := range apps {
			lines = append(lines, fmt.Sprintf("- %s (PID: %d, Active: %t, Has Windows: %t)",
				app.Name, app.PID, app.Frontmost, len(app.Windows) > 0))
		}
		return nil, fmt.Errorf("no accessible windows found. Available applications:\n%s\n"+
			"Please ensure the agent has accessibility permissions and the applications have visible windows",
			strings.Join(lines, "\n"))
	}
	return snap, nil
}
