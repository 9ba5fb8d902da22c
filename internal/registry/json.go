package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jsvensson/lumen/internal/light"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lumen.registry")

const ext = ".json"

// JSON is a Registry backed by a directory of indented JSON files:
//
//	<root>/dumps/<name>.json
//	<root>/defaults/<name>.json
type JSON struct {
	root     string
	dumps    collection
	defaults collection
}

// NewJSON returns a registry rooted at dir. Directories are created on
// first write.
func NewJSON(dir string) *JSON {
	return &JSON{
		root:     dir,
		dumps:    collection{kind: "dump", dir: filepath.Join(dir, "dumps")},
		defaults: collection{kind: "default", dir: filepath.Join(dir, "defaults")},
	}
}

func (r *JSON) Name() string {
	return "json:" + r.root
}

func (r *JSON) ListDefaults() ([]*light.Light, error) { return r.defaults.list() }
func (r *JSON) ListDumps() ([]*light.Light, error)    { return r.dumps.list() }

func (r *JSON) LoadDefault(name string) (*light.Light, error) { return r.defaults.load(name) }
func (r *JSON) LoadDump(name string) (*light.Light, error)    { return r.dumps.load(name) }

func (r *JSON) Default(l *light.Light) error { return r.defaults.save(l) }
func (r *JSON) Dump(l *light.Light) error    { return r.dumps.save(l) }

func (r *JSON) RemoveDefault(name string) error { return r.defaults.remove(name) }
func (r *JSON) RemoveDump(name string) error    { return r.dumps.remove(name) }

func (r *JSON) RenameDefault(oldName, newName string) error {
	return r.defaults.rename(oldName, newName)
}

func (r *JSON) RenameDump(oldName, newName string) error {
	return r.dumps.rename(oldName, newName)
}

type collection struct {
	kind string
	dir  string
}

func (c collection) path(name string) string {
	return filepath.Join(c.dir, name+ext)
}

func (c collection) list() ([]*light.Light, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", c.kind, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)

	lights := make([]*light.Light, 0, len(names))
	for _, name := range names {
		l, err := c.load(name)
		if err != nil {
			return nil, err
		}
		lights = append(lights, l)
	}
	return lights, nil
}

func (c collection) load(name string) (*light.Light, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s %q: %w", c.kind, name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s %q: %w", c.kind, name, err)
	}

	var l light.Light
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%s %q: %w", c.kind, name, err)
	}
	// The file name is authoritative.
	if l.Name() != name {
		log.Warningf("%s %q stores name %q, using file name", c.kind, name, l.Name())
		l.SetName(name)
	}
	return &l, nil
}

func (c collection) save(l *light.Light) error {
	if err := ValidateName(l.Name()); err != nil {
		return fmt.Errorf("saving %s of %s: %w", c.kind, l.ID(), err)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s %q: %w", c.kind, l.Name(), err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(c.path(l.Name()), data); err != nil {
		return fmt.Errorf("writing %s %q: %w", c.kind, l.Name(), err)
	}
	log.Infof("saved %s %q (%s)", c.kind, l.Name(), l.ID())
	return nil
}

func (c collection) remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(c.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %q: %w", c.kind, name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("removing %s %q: %w", c.kind, name, err)
	}
	log.Infof("removed %s %q", c.kind, name)
	return nil
}

func (c collection) rename(oldName, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	l, err := c.load(oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if _, err := os.Stat(c.path(newName)); err == nil {
		return fmt.Errorf("%s %q: %w", c.kind, newName, ErrExists)
	}

	l.SetName(newName)
	if err := c.save(l); err != nil {
		return err
	}
	return c.remove(oldName)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
