// Package migration carga migraciones SQL versionadas desde un fs.FS.
//
// Cada archivo se llama NNN_descripcion.sql; NNN es la versión (entero, sin huecos obligatorios)
// y se aplica en orden ascendente. Los adaptadores de BD registran las versiones aplicadas en la
// tabla schema_migrations y solo ejecutan las pendientes.
package migration

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Migration un paso de esquema.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Load lee y ordena las migraciones del directorio dir dentro de fsys.
func Load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var list []Migration
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version, name, err := parseName(e.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("migración %d duplicada: %s y %s", version, prev, e.Name())
		}
		seen[version] = e.Name()
		body, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		list = append(list, Migration{Version: version, Name: name, SQL: string(body)})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list, nil
}

// Pending devuelve, en orden, las migraciones cuya versión no está en applied.
func Pending(all []Migration, applied map[int]bool) []Migration {
	var out []Migration
	for _, m := range all {
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out
}

// Versions extrae los números de versión.
func Versions(list []Migration) []int {
	out := make([]int, 0, len(list))
	for _, m := range list {
		out = append(out, m.Version)
	}
	return out
}

func parseName(file string) (int, string, error) {
	base := strings.TrimSuffix(file, ".sql")
	num, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("nombre de migración inválido: %s (esperado NNN_descripcion.sql)", file)
	}
	version, err := strconv.Atoi(num)
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("versión de migración inválida en %s", file)
	}
	return version, name, nil
}
