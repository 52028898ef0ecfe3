package postgres

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate aplica los scripts de migrations/ en orden. Son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, q Querier) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return errors.Wrap(err, "listar migraciones")
	}
	sort.Strings(files)
	for _, f := range files {
		sql, err := migrations.ReadFile(f)
		if err != nil {
			return errors.Wrapf(err, "leer %s", f)
		}
		if _, err := q.Exec(ctx, string(sql)); err != nil {
			return errors.Wrapf(err, "aplicar %s", f)
		}
	}
	return nil
}
