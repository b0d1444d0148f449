package bytesearch

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/bytesearch/lexer"
	"github.com/vippsas/bytesearch/source"
	"golang.org/x/sync/errgroup"
)

// DefaultExtensions are the file extensions Include picks up when
// Options.Extensions is empty.
var DefaultExtensions = []string{".js", ".mjs", ".cjs", ".ts", ".jsx", ".tsx"}

// Options that affect which files are included and how; pass an empty
// struct to get default options.
type Options struct {
	Extensions []string

	// if this is set, lexing failed in some files and it's up to the caller
	// to know what one is doing..
	PartialResults bool

	Logger logrus.FieldLogger

	// number of files lexed in parallel; defaults to GOMAXPROCS
	Concurrency int
}

func (opts Options) logger() logrus.FieldLogger {
	if opts.Logger == nil {
		return logrus.StandardLogger()
	}
	return opts.Logger
}

func (opts Options) extensions() []string {
	if len(opts.Extensions) == 0 {
		return DefaultExtensions
	}
	return opts.Extensions
}

// FileStats is the result of lexing a single file.
type FileStats struct {
	// Path is "fs[i]:path", identifying the filesystem the file came from
	Path   string
	File   source.FileRef
	Bytes  int
	Lines  int
	Tokens map[lexer.TokenType]int
	Errors []source.Error

	text string
	hash [32]byte
}

// Corpus is a set of source files that have been lexed.
type Corpus struct {
	Files []FileStats

	// Fingerprint identifies the contents and lexing result of the corpus;
	// hex of the first 6 bytes of a sha256.
	Fingerprint string
}

func (c Corpus) Bytes() int {
	n := 0
	for _, f := range c.Files {
		n += f.Bytes
	}
	return n
}

// Tokens sums token counts over all files.
func (c Corpus) Tokens() map[lexer.TokenType]int {
	result := make(map[lexer.TokenType]int)
	for _, f := range c.Files {
		for tt, n := range f.Tokens {
			result[tt] += n
		}
	}
	return result
}

func (c Corpus) Errors() []source.Error {
	var result []source.Error
	for _, f := range c.Files {
		result = append(result, f.Errors...)
	}
	return result
}

// Include lexes the source files found in fsys, typically embedded using
// the `embed` go feature. The filesystems are walked in order, and each in
// lexical order, so the result is stable.
func Include(opts Options, fsys ...fs.FS) (Corpus, error) {
	logger := opts.logger()
	files, err := readFilesystems(fsys, opts.extensions())
	if err != nil {
		return Corpus{}, err
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range files {
		f := &files[i]
		g.Go(func() error {
			lexFile(f)
			logger.WithFields(logrus.Fields{
				"file":   f.Path,
				"bytes":  f.Bytes,
				"errors": len(f.Errors),
			}).Debug("lexed file")
			return nil
		})
	}
	_ = g.Wait()

	result := Corpus{
		Files:       files,
		Fingerprint: fingerprint(files),
	}
	if errs := result.Errors(); len(errs) > 0 && !opts.PartialResults {
		return Corpus{}, LexErrors{Errors: errs}
	}
	return result, nil
}

func MustInclude(opts Options, fsys ...fs.FS) Corpus {
	result, err := Include(opts, fsys...)
	if err != nil {
		panic(err)
	}
	return result
}

func readFilesystems(fslst []fs.FS, extensions []string) ([]FileStats, error) {
	// It may be easy to pass in the same directory twice but that should
	// not be encouraged, so if we get the same hash from two files, return
	// an error.
	hashes := make(map[[32]byte]string)
	var files []FileStats

	for fidx, fsys := range fslst {
		// WalkDir is in lexical order according to docs, so output should be stable
		err := fs.WalkDir(fsys, ".",
			func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				// Skip over any hidden directories; in particular .git
				if strings.HasPrefix(path, ".") && path != "." || strings.Contains(path, "/.") {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.IsDir() || !hasExtension(path, extensions) {
					return nil
				}

				buf, err := fs.ReadFile(fsys, path)
				if err != nil {
					return err
				}

				pathDesc := fmt.Sprintf("fs[%d]:%s", fidx, path)
				hash := sha256.Sum256(buf)
				if existing, ok := hashes[hash]; ok {
					return DuplicateFileError{Path: pathDesc, ExistingPath: existing}
				}
				hashes[hash] = pathDesc

				files = append(files, FileStats{
					Path: pathDesc,
					File: source.FileRef(path),
					text: string(buf),
					hash: hash,
				})
				return nil
			})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func lexFile(f *FileStats) {
	f.Bytes = len(f.text)
	f.Tokens = make(map[lexer.TokenType]int)
	s := lexer.NewScanner(f.File, f.text)
	for {
		tt := s.NextToken()
		if tt == lexer.EOFToken {
			break
		}
		f.Tokens[tt]++
		if tt.IsError() {
			f.Errors = append(f.Errors, tokenError(s))
		}
		if tt == lexer.NonUTF8ErrorToken {
			break
		}
	}
	f.Lines = s.Source().Lines()
}

func fingerprint(files []FileStats) string {
	hasher := sha256.New()
	var buf [8]byte
	for _, f := range files {
		hasher.Write([]byte(f.Path + "\n"))
		hasher.Write(f.hash[:])
		for tt := lexer.WhitespaceToken; tt <= lexer.EOFToken; tt++ {
			binary.LittleEndian.PutUint64(buf[:], uint64(f.Tokens[tt]))
			hasher.Write(buf[:])
		}
	}
	// 6 bytes of hash = 48 bits; plenty to tell benchmark corpora apart
	return hex.EncodeToString(hasher.Sum(nil)[:6])
}
