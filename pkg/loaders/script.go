// Package loaders builds scenes from scene scripts, a small Lisp evaluated
// in a zygomys sandbox.
package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-crayfish/pkg/geometry"
	"github.com/df07/go-crayfish/pkg/renderer"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
)

// ScriptExtension is the file extension of scene scripts
const ScriptExtension = ".lisp"

// EvalTimeout is the hard limit for evaluating one script
const EvalTimeout = 5 * time.Second

// Script is the result of evaluating a scene script
type Script struct {
	World  *geometry.Group
	Camera *renderer.CameraConfig // nil if the script never calls (camera ...)
}

// EvalError is a parse or runtime error in script code
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// LoadScript reads and evaluates a scene script file
func LoadScript(filename string) (*Script, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scene script")
	}

	script, err := Evaluate(string(source))
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}
	return script, nil
}

// Evaluate runs source in a fresh sandbox and returns the scene it built.
// Script mistakes come back as an EvalError; a panic or a run longer than
// EvalTimeout is reported as a plain error.
func Evaluate(source string) (*Script, error) {
	return evaluateWithTimeout(source, EvalTimeout)
}

type evalResult struct {
	script *Script
	err    error
}

func evaluateWithTimeout(source string, timeout time.Duration) (*Script, error) {
	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: errors.Errorf("panic during evaluation: %v", r)}
			}
		}()

		script, err := evaluate(source)
		ch <- evalResult{script: script, err: err}
	}()

	return waitWithTimeout(ch, timeout)
}

// waitWithTimeout returns the first result from ch, or an error once timeout
// passes. A timed-out evaluation keeps running; its result is dropped.
func waitWithTimeout(ch <-chan evalResult, timeout time.Duration) (*Script, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.script, res.err
	case <-timer.C:
		return nil, errors.Errorf("evaluation timed out after %s", timeout)
	}
}

func evaluate(source string) (*Script, error) {
	script := &Script{World: geometry.NewGroup()}
	if strings.TrimSpace(source) == "" {
		return script, nil
	}

	// The sandbox has no filesystem or system calls
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, script)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err)
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err)
	}
	return script, nil
}

// linePattern matches zygomys messages of the form "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?is)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches "line N: ..."
var linePatternShort = regexp.MustCompile(`(?is)^line (\d+):\s*(.*)`)

// parseZygomysError pulls the line number out of a zygomys error when it has one
func parseZygomysError(err error) EvalError {
	msg := err.Error()

	for _, pattern := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return EvalError{Line: line, Message: strings.TrimSpace(m[2])}
		}
	}
	return EvalError{Message: strings.TrimSpace(msg)}
}

// validateFilePath rejects paths that cannot name a scene script
func validateFilePath(filename string) error {
	if filename == "" {
		return errors.New("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return errors.New("invalid file path: null bytes not allowed")
	}
	if len(filename) > 512 {
		return errors.New("file path too long: maximum 512 characters allowed")
	}
	if !strings.EqualFold(filepath.Ext(filename), ScriptExtension) {
		return errors.Errorf("invalid file type: only %s scene scripts are allowed", ScriptExtension)
	}
	return nil
}
