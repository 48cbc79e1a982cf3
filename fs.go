package main

import (
	"io/fs"

	"github.com/goccy/go-yaml"
)

// FS groups together the filesystem interfaces that are common between
// embed.FS and what os.DirFS() returns. The config, the params and the level
// catalogue are all read through an FS, so they load the same way whether
// they are embedded in the executable or sit in the data folder next to it.
type FS interface {
	fs.FS
	fs.ReadFileFS
	fs.ReadDirFS
}

func LoadYAML(fsys FS, filename string, v any) {
	data, err := fsys.ReadFile(filename)
	Check(err)
	if err != nil {
		return
	}
	Check(yaml.Unmarshal(data, v))
}

func CloseFile(f fs.File) {
	Check(f.Close())
}

func FileExists(fsys FS, name string) bool {
	file, err := fsys.Open(name)
	if err == nil {
		CloseFile(file)
		return true
	} else {
		return false
	}
}
