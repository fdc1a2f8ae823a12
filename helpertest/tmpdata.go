package helpertest

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultTmpPrefix = "nsec3gen"

// TmpFolder is a temporary directory for a single test, removed with Clean.
type TmpFolder struct {
	Path   string
	Error  error
	prefix string
}

type TmpFile struct {
	Path   string
	Error  error
	Folder *TmpFolder
}

func NewTmpFolder(prefix string) *TmpFolder {
	ipref := prefix

	if len(ipref) == 0 {
		ipref = defaultTmpPrefix
	}

	path, err := os.MkdirTemp("", ipref)

	return &TmpFolder{
		Path:   path,
		Error:  err,
		prefix: ipref,
	}
}

func (tf *TmpFolder) Clean() error {
	if len(tf.Path) > 0 {
		return os.RemoveAll(tf.Path)
	}

	return nil
}

// CreateSubFolder creates `name` below the folder, or a random directory if name is empty
func (tf *TmpFolder) CreateSubFolder(name string) *TmpFolder {
	var (
		path string
		err  error
	)

	if len(name) > 0 {
		path = filepath.Join(tf.Path, name)
		err = os.MkdirAll(path, fs.ModePerm)
	} else {
		path, err = os.MkdirTemp(tf.Path, tf.prefix)
	}

	return &TmpFolder{
		Path:   path,
		Error:  err,
		prefix: tf.prefix,
	}
}

// CreateStringFile writes every line followed by a line break
func (tf *TmpFolder) CreateStringFile(name string, lines ...string) *TmpFile {
	f, err := tf.createFile(name)
	if err != nil {
		return &TmpFile{Error: err, Folder: tf}
	}

	w := bufio.NewWriter(f)

	for _, l := range lines {
		if _, err = w.WriteString(l + "\n"); err != nil {
			break
		}
	}

	if ferr := w.Flush(); err == nil {
		err = ferr
	}

	return tf.checkState(f, err)
}

func (tf *TmpFolder) JoinPath(name string) string {
	return filepath.Join(tf.Path, name)
}

func (tf *TmpFolder) CountFiles() (int, error) {
	files, err := os.ReadDir(tf.Path)
	if err != nil {
		return 0, err
	}

	return len(files), nil
}

func (tf *TmpFolder) createFile(name string) (*os.File, error) {
	if len(name) > 0 {
		return os.Create(filepath.Join(tf.Path, name))
	}

	return os.CreateTemp(tf.Path, "temp")
}

func (tf *TmpFolder) checkState(file *os.File, ierr error) *TmpFile {
	path := file.Name()

	if err := file.Close(); ierr == nil {
		ierr = err
	}

	if ierr == nil {
		_, ierr = os.Stat(path)
	}

	return &TmpFile{
		Path:   path,
		Error:  ierr,
		Folder: tf,
	}
}
