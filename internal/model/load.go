package model

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadDir loads every .cue file in dir as one CUE instance and compiles it.
// A nil model means nothing could be compiled at all.
func LoadDir(dir string) (*Model, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&CompileError{Code: ErrCodeNotFound, Field: "dir", Message: fmt.Sprintf("model directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&CompileError{Code: ErrCodeNotFound, Field: "dir", Message: fmt.Sprintf("error accessing model directory: %v", err), Err: err}}
	}
	if !info.IsDir() {
		return nil, []error{&CompileError{Code: ErrCodeNotFound, Field: "dir", Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&CompileError{Code: ErrCodeScanError, Field: "dir", Message: fmt.Sprintf("error scanning directory: %v", err), Err: err}}
	}
	if len(files) == 0 {
		return nil, []error{&CompileError{Code: ErrCodeNoFiles, Field: "dir", Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&CompileError{Code: ErrCodeLoadFailed, Field: "dir", Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&CompileError{Code: ErrCodeLoadFailed, Field: "dir", Message: fmt.Sprintf("loading CUE files: %v", inst.Err), Err: inst.Err}}
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{formatCUEError(err, "")}
	}

	m, errs := Compile(value)
	m.FileCount = len(files)
	return m, errs
}

// FindCUEFiles returns the .cue files directly in dir. Subdirectories are
// separate CUE packages and are not part of the model.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
