package extract

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"jtx/archive"
	"jtx/common"
	"jtx/justext"
	"jtx/state"
	"jtx/stopwords"
)

// Run implements the extract subcommand: resolves the stoplist, determines
// the input kind and processes every HTML document found.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to text", zap.Error(err))
		format = common.OutputFmtText
	}
	env.OutputFormat = format

	if cmd.Bool("no-headings") {
		env.Cfg.Document.Classifier.NoHeadings = true
	}
	env.NoDirs, env.Overwrite, env.DumpAll = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("all")

	if err := resolveStoplist(env, cmd, log); err != nil {
		return err
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	var codePage encoding.Encoding
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		codePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			codePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(codePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst),
		zap.Stringer("format", format), zap.String("language", env.Language))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, codePage, log)
}

// resolveStoplist loads classification stopwords: an explicit stoplist file
// wins over the bundled per-language list.
func resolveStoplist(env *state.LocalEnv, cmd *cli.Command, log *zap.Logger) error {
	env.Language = cmd.String("language")
	if len(env.Language) == 0 {
		env.Language = env.Cfg.Document.Language
	}

	path := cmd.String("stoplist")
	if len(path) == 0 {
		path = env.Cfg.Document.StoplistPath
	}
	if len(path) > 0 {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("unable to open stoplist file: %w", err)
		}
		defer f.Close()
		if env.Stoplist, err = stopwords.Load(f); err != nil {
			return err
		}
		log.Debug("Using external stoplist", zap.String("file", path), zap.Int("words", len(env.Stoplist)))
		return nil
	}

	if cmd.Bool("no-stoplist") {
		// language-independent mode: no stopwords and zero density thresholds
		env.Stoplist = justext.Stoplist{}
		env.Cfg.Document.Classifier.StopwordsLow = 0
		env.Cfg.Document.Classifier.StopwordsHigh = 0
		log.Debug("Classifying without language resources")
		return nil
	}

	set, err := stopwords.ByLanguage(env.Language)
	if err != nil {
		return err
	}
	env.Stoplist = set
	log.Debug("Using bundled stoplist", zap.String("language", env.Language), zap.Int("words", len(set)))
	return nil
}

// process handles the core extraction logic independently of CLI framework.
// It determines the input type (directory, archive, or single file) and
// processes accordingly.
func process(ctx context.Context, src, dst string, codePage encoding.Encoding, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, codePage, log); err != nil {
				return errors.New("unable to process directory")
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, tail, "", dst, codePage, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if isHTMLFile(head) && len(tail) == 0 {
			// we have a document, it cannot have tail
			file, err := os.Open(head)
			if err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			} else {
				defer file.Close()
				if err := processDocument(ctx, file, filepath.Base(head), dst, log); err != nil {
					log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
				}
			}
			break
		}
		return fmt.Errorf("input was not recognized as HTML document (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding HTML files and processes them.
func processDir(ctx context.Context, dir, dst string, codePage encoding.Encoding, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, codePage, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		if !isHTMLFile(path) {
			log.Debug("Skipping file, not recognized as HTML or archive", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processDocument(ctx, file, src, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processArchive walks all files inside archive, finds HTML documents under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, codePage encoding.Encoding, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	err = archive.Walk(path, pathIn, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !isHTMLInArchive(f) {
			log.Debug("Skipping file, not recognized as HTML", zap.String("archive", arc), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.FileHeader.Name
		if codePage != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := codePage.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(codePage)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := processDocument(ctx, r, filepath.Join(pathOut, pathInArchive), dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

// processDocument processes single HTML document. "src" is part of the
// source path (always including file name) relative to the original path.
// "dst" is the destination directory where the extracted text should be
// written.
func processDocument(ctx context.Context, r io.Reader, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Extraction starting", zap.String("from", src))
	defer func(start time.Time) {
		// if multiple documents are being processed we do not want one
		// pathological input to stop the batch
		if r := recover(); r != nil {
			log.Error("Extraction ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("extraction panic: %v", r)
		} else {
			log.Info("Extraction completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	c, err := prepareContent(ctx, r, src, log)
	if err != nil {
		return fmt.Errorf("unable to prepare HTML source (%s): %w", src, err)
	}

	paragraphs := justext.ClassifyNode(c.Root, env.Stoplist, env.Cfg.Document.Classifier.Options(), log)

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(c, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	data, err := render(paragraphs, env.OutputFormat, env.DumpAll)
	if err != nil {
		return fmt.Errorf("unable to render output: %w", err)
	}
	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store extraction result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("dumps/%s.txt", filepath.Base(src)), []byte(dumpParagraphs(paragraphs)))
		env.Rpt.Store("result-"+filepath.Base(outputName), outputName)
	}

	return nil
}
