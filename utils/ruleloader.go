package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// LoadRuleFile reads declarative rules from a JSON file holding one rule object or an array of them.
// Rules without an id are named after the file.
func LoadRuleFile(filename string) ([]rules.Rule, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadRuleFile] failed to read file: %+v", filename)
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	data = bytes.TrimSpace(data)

	if bytes.HasPrefix(data, []byte("[")) {
		var list []rules.Rule
		if err = json.Unmarshal(data, &list); err != nil {
			return nil, errors.Wrapf(err, "[LoadRuleFile] failed to unmarshal rules from file: %+v", filename)
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = fmt.Sprintf("%s#%d", base, i)
			}
		}
		return list, nil
	}

	var rule rules.Rule
	if err = json.Unmarshal(data, &rule); err != nil {
		return nil, errors.Wrapf(err, "[LoadRuleFile] failed to unmarshal rule from file: %+v", filename)
	}
	if rule.ID == "" {
		rule.ID = base
	}
	return []rules.Rule{rule}, nil
}

// LoadRuleDir reads every *.json file in dir. Files are parsed concurrently but the
// result follows the sorted file names, which is the evaluation priority.
func LoadRuleDir(dir string) ([]rules.Rule, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadRuleDir] bad directory pattern: %+v", dir)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("[LoadRuleDir] no *.json rule files in %s", dir)
	}
	sort.Strings(files)

	var (
		eg     errgroup.Group
		loaded = make([][]rules.Rule, len(files))
	)
	for i, file := range files {
		eg.Go(func() error {
			rs, err := LoadRuleFile(file)
			if err != nil {
				return err
			}
			loaded[i] = rs
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, errors.Wrapf(err, "[LoadRuleDir] failed to load rules from %s", dir)
	}

	var all []rules.Rule
	for _, rs := range loaded {
		all = append(all, rs...)
	}
	return all, nil
}
