package commit

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stackforge-dev/stackforge/internal/domain/entities"
)

// transaction tracks every in-place edit of an add run so a failure can
// restore the directory to its pre-run state: created files are removed,
// overwritten files get their snapshot back.
type transaction struct {
	target    string
	created   []string
	snapshots map[string][]byte
}

func newTransaction(target string) *transaction {
	return &transaction{target: target, snapshots: make(map[string][]byte)}
}

// write records the previous content (or absence) of a path, then writes it.
func (tx *transaction) write(rel string, content []byte, perm os.FileMode) error {
	dest := filepath.Join(tx.target, rel)

	if prev, err := os.ReadFile(dest); err == nil {
		if _, seen := tx.snapshots[rel]; !seen {
			tx.snapshots[rel] = prev
		}
	} else if os.IsNotExist(err) {
		tx.created = append(tx.created, rel)
	} else {
		return &entities.CommitError{Reason: "snapshotting file", Path: rel, Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &entities.CommitError{Reason: "creating directory", Path: rel, Cause: err}
	}
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(dest, content, perm); err != nil {
		return &entities.CommitError{Reason: "writing file", Path: rel, Cause: err}
	}
	return nil
}

// rollback undoes every recorded edit. Rollback is best-effort: a failure to
// restore one path is logged and the rest are still attempted.
func (tx *transaction) rollback(logger *slog.Logger) {
	for _, rel := range tx.created {
		if err := os.Remove(filepath.Join(tx.target, rel)); err != nil && !os.IsNotExist(err) {
			logger.Warn("rollback: removing created file failed", "path", rel, "error", err)
		}
	}
	for rel, prev := range tx.snapshots {
		if err := os.WriteFile(filepath.Join(tx.target, rel), prev, 0o644); err != nil {
			logger.Warn("rollback: restoring file failed", "path", rel, "error", err)
		}
	}
	if len(tx.created) > 0 || len(tx.snapshots) > 0 {
		logger.Info("rolled back partial changes", "target", tx.target)
	}
}
