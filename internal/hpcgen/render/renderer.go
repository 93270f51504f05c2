// Package render turns a validated job configuration into the text
// descriptor consumed by the job-dispatch daemon. Substitution is driven
// by a fixed field-to-formatter table, so a template naming an unknown
// field fails when the renderer is built, not midway through a render.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"hpcgen/internal/hpcgen/domain"
	"hpcgen/pkg/errors"
	"hpcgen/pkg/logger"
)

var tokenRe = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

type formatterFunc func(*domain.JobConfig) string

// formatters is the closed mapping from template field names to their
// rendered forms: booleans as lowercase literals, the method as its wire
// integer, absent optionals as empty strings, strings quote-escaped.
var formatters = map[string]formatterFunc{
	"job_name":     func(j *domain.JobConfig) string { return escapeValue(j.JobName()) },
	"cluster_name": func(j *domain.JobConfig) string { return escapeValue(j.ClusterName()) },
	"custom_submission_string": func(j *domain.JobConfig) string {
		return escapeValue(j.CustomSubmissionString())
	},
	"product_full_path": func(j *domain.JobConfig) string { return escapeValue(j.ProductFullPath()) },
	"auto_hpc":          func(j *domain.JobConfig) string { return formatBool(j.AutoHPC()) },
	"monitor":           func(j *domain.JobConfig) string { return formatBool(j.Monitor()) },
	"ng_solve":          func(j *domain.JobConfig) string { return formatBool(j.NGSolve()) },
	"use_ppe":           func(j *domain.JobConfig) string { return formatBool(j.UsePPE()) },
	"wait_for_license":  func(j *domain.JobConfig) string { return formatBool(j.WaitForLicense()) },
	"shared_directory_linux": func(j *domain.JobConfig) string {
		if dir, ok := j.SharedDirectoryLinux(); ok {
			return escapeValue(dir)
		}
		return ""
	},
	"shared_directory_windows": func(j *domain.JobConfig) string {
		if dir, ok := j.SharedDirectoryWindows(); ok {
			return escapeValue(dir)
		}
		return ""
	},
	"method":    func(j *domain.JobConfig) string { return strconv.Itoa(j.Method().Code()) },
	"exclusive": func(j *domain.JobConfig) string { return formatBool(j.Resource().Exclusive()) },
	"num_cores": func(j *domain.JobConfig) string { return strconv.Itoa(j.Resource().NumCores()) },
	"num_nodes": func(j *domain.JobConfig) string { return strconv.Itoa(j.Resource().NumNodes()) },
	"num_tasks": func(j *domain.JobConfig) string { return strconv.Itoa(j.Resource().NumTasks()) },
	"num_gpus": func(j *domain.JobConfig) string {
		if v, ok := j.Resource().NumGPUs(); ok {
			return strconv.Itoa(v)
		}
		return ""
	},
	"max_tasks_per_node": func(j *domain.JobConfig) string {
		if v, ok := j.Resource().MaxTasksPerNode(); ok {
			return strconv.Itoa(v)
		}
		return ""
	},
	"ram_limit": func(j *domain.JobConfig) string { return strconv.Itoa(j.Resource().RAMLimit()) },
	"ram_per_core": func(j *domain.JobConfig) string {
		return strconv.FormatFloat(j.Resource().RAMPerCore(), 'g', -1, 64)
	},
	"cores_per_task": func(j *domain.JobConfig) string {
		return strconv.Itoa(j.Resource().CoresPerTask())
	},
}

// Renderer substitutes job values into a validated template.
type Renderer struct {
	template string
	tokens   []string
}

// NewRenderer validates every {{token}} in the template against the
// formatter table. An unknown token is a template defect and fails here,
// before any render is attempted.
func NewRenderer(template string) (*Renderer, error) {
	matches := tokenRe.FindAllStringSubmatch(template, -1)
	if strings.Count(template, "{{") != len(matches) {
		return nil, errors.WrapTemplateError(
			fmt.Errorf("%w: stray '{{' without a matching field token", errors.ErrBadTemplate))
	}

	tokens := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if _, ok := formatters[name]; !ok {
			return nil, errors.NewUnresolvedTokenError(name)
		}
		tokens = append(tokens, name)
	}

	return &Renderer{template: template, tokens: tokens}, nil
}

func mustNewRenderer(template string) *Renderer {
	r, err := NewRenderer(template)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRenderer = mustNewRenderer(DefaultTemplate)

// Tokens returns the field names the template references, in order of
// first appearance.
func (r *Renderer) Tokens() []string {
	return append([]string(nil), r.tokens...)
}

// Render produces the descriptor text. Pure and deterministic: identical
// job state yields identical bytes on every call.
func (r *Renderer) Render(job *domain.JobConfig) string {
	return tokenRe.ReplaceAllStringFunc(r.template, func(token string) string {
		name := tokenRe.FindStringSubmatch(token)[1]
		return formatters[name](job)
	})
}

// RenderToFile writes the rendered descriptor to path as UTF-8.
func (r *Renderer) RenderToFile(job *domain.JobConfig, path string) error {
	if err := os.WriteFile(path, []byte(r.Render(job)), 0644); err != nil {
		return errors.WrapDocumentError(path, err)
	}
	return nil
}

// SaveAreg renders job through the built-in template and writes the
// descriptor, defaulting the extension when the caller omits one. It
// returns the path actually written.
func SaveAreg(job *domain.JobConfig, path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += DefaultDescriptorExt
	}
	if err := defaultRenderer.RenderToFile(job, path); err != nil {
		return "", err
	}
	logger.Debug("descriptor written", "path", path, "method", job.Method().String())
	return path, nil
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// escapeValue protects the descriptor's single-quoted string grammar:
// backslashes double, quotes get a backslash.
func escapeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
