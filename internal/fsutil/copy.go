package fsutil

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Policy controls how a tree is mirrored into a target directory.
type Policy struct {
	// Overwrite replaces files that already exist in the target. When false,
	// existing files are left untouched and reported as skipped.
	Overwrite bool
	// Rename maps a source file name to its target file name. The existence
	// check runs against the renamed path. Nil keeps names unchanged.
	Rename func(name string) string
	// Exclude holds doublestar patterns matched against the slash-separated
	// path relative to the copy root. Excluded entries are neither copied nor
	// counted; an excluded directory excludes its whole subtree.
	Exclude []string
}

func (p Policy) targetName(name string) string {
	if p.Rename == nil {
		return name
	}
	return p.Rename(name)
}

func (p Policy) excluded(rel string) bool {
	for _, pattern := range p.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Op is a single planned file operation.
type Op struct {
	Src string
	Dst string
}

// Plan is the outcome of comparing a source tree against a target. Nothing
// is written until the plan is applied.
type Plan struct {
	Dirs   []string // target directories, parents before children
	Writes []Op
	Skips  []Op

	claimed map[string]bool // destinations already planned as writes
}

// Counts summarizes how many files a copy wrote and skipped.
type Counts struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
}

// Counts returns the number of planned writes and skips.
func (p *Plan) Counts() Counts {
	return Counts{Copied: len(p.Writes), Skipped: len(p.Skips)}
}

// Copier copies files from a source filesystem into a target filesystem.
type Copier struct {
	src afero.Fs
	dst afero.Fs
	log *zerolog.Logger
}

// NewCopier creates a Copier. A nil logger disables debug output.
func NewCopier(src, dst afero.Fs, log *zerolog.Logger) *Copier {
	return &Copier{src: src, dst: dst, log: logging.OrNop(log)}
}

// CopyFile copies a single file. With overwrite false and an existing
// destination it does nothing and returns false.
func (c *Copier) CopyFile(src, dst string, overwrite bool) (bool, error) {
	if !overwrite && PathExists(c.dst, dst) {
		c.log.Debug().Str("path", dst).Msg("skip existing file")
		return false, nil
	}
	if err := copyFile(c.src, src, c.dst, dst); err != nil {
		return false, err
	}
	c.log.Debug().Str("from", src).Str("path", dst).Msg("copied file")
	return true, nil
}

// CopyDir mirrors src into dst, applying overwrite to every file.
func (c *Copier) CopyDir(src, dst string, overwrite bool) (Counts, error) {
	return c.CopyTree(src, dst, Policy{Overwrite: overwrite})
}

// CopyTree plans and applies a copy of src into dst under policy.
func (c *Copier) CopyTree(src, dst string, policy Policy) (Counts, error) {
	plan, err := c.PlanCopy(src, dst, policy)
	if err != nil {
		return Counts{}, err
	}
	if err := c.Apply(plan); err != nil {
		return Counts{}, err
	}
	return plan.Counts(), nil
}

// PlanCopy walks src in lexical order and decides, for every regular file,
// whether it is written or skipped in dst. The target is only inspected.
// Symlinks and other special files are ignored.
func (c *Copier) PlanCopy(src, dst string, policy Policy) (*Plan, error) {
	plan := &Plan{}
	if err := c.plan(src, dst, "", policy, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (c *Copier) plan(srcDir, dstDir, rel string, policy Policy, plan *Plan) error {
	entries, err := afero.ReadDir(c.src, srcDir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", srcDir, err)
	}
	plan.Dirs = append(plan.Dirs, dstDir)

	for _, entry := range entries {
		name := entry.Name()
		relPath := path.Join(rel, name)
		if policy.excluded(relPath) {
			continue
		}

		srcPath := filepath.Join(srcDir, name)
		if entry.IsDir() {
			if err := c.plan(srcPath, filepath.Join(dstDir, name), relPath, policy, plan); err != nil {
				return err
			}
			continue
		}
		if !entry.Mode().IsRegular() {
			continue
		}

		// Two sources can rename onto one destination; without overwrite the
		// first planned write keeps it.
		op := Op{Src: srcPath, Dst: filepath.Join(dstDir, policy.targetName(name))}
		if !policy.Overwrite && (plan.claimed[op.Dst] || PathExists(c.dst, op.Dst)) {
			plan.Skips = append(plan.Skips, op)
			continue
		}
		if plan.claimed == nil {
			plan.claimed = map[string]bool{}
		}
		plan.claimed[op.Dst] = true
		plan.Writes = append(plan.Writes, op)
	}
	return nil
}

// Apply creates the planned directories and performs the planned writes.
func (c *Copier) Apply(plan *Plan) error {
	for _, dir := range plan.Dirs {
		if err := EnsureDir(c.dst, dir); err != nil {
			return err
		}
	}
	for _, op := range plan.Writes {
		if err := copyFile(c.src, op.Src, c.dst, op.Dst); err != nil {
			return err
		}
		c.log.Debug().Str("from", op.Src).Str("path", op.Dst).Msg("copied file")
	}
	for _, op := range plan.Skips {
		c.log.Debug().Str("path", op.Dst).Msg("skip existing file")
	}
	return nil
}
