package server

import (
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/types"
)

// ModelOverride lets a request pick another provider or model than the
// configured default.
type ModelOverride struct {
	Provider string `json:"provider" binding:"omitempty,oneof=openai ollama"`
	Model    string `json:"model"`
}

type GenerateTestCasesRequest struct {
	ModelOverride
	Description string `json:"description" binding:"required"`
	Lang        string `json:"lang"`
	Format      string `json:"format" binding:"omitempty,oneof=json markdown"`
}

type GenerateTestCodeRequest struct {
	ModelOverride
	TestCase   types.TestCase `json:"test_case"`
	Language   string         `json:"language" binding:"omitempty,oneof=ts js typescript javascript python py java"`
	BaseURL    string         `json:"base_url" binding:"omitempty,url"`
	TargetPath string         `json:"target_path"`
	Format     bool           `json:"format"`
}

type GenerateTestCodeResponse struct {
	Code              string              `json:"code"`
	SuggestedFilename string              `json:"suggested_filename"`
	SavedPath         string              `json:"saved_path,omitempty"`
	Syntax            *tools.SyntaxReport `json:"syntax,omitempty"`
}

type GenerateDemoAppRequest struct {
	ModelOverride
	Description string `json:"description"`
	OutDir      string `json:"out_dir"`
}

type GenerateDemoAppResponse struct {
	Saved []string `json:"saved"`
}

type ReviewTestRequest struct {
	ModelOverride
	Code string `json:"code" binding:"required"`
}

type SaveLocalRequest struct {
	RelativePath string `json:"relative_path" binding:"required"`
	Content      string `json:"content"`
}

type SaveLocalResponse struct {
	Path string `json:"path"`
}

type SaveGithubRequest struct {
	Owner   string `json:"owner" binding:"required"`
	Repo    string `json:"repo" binding:"required"`
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
	Message string `json:"message"`
	Branch  string `json:"branch"`
}

type GitPushRequest struct {
	Message string `json:"message"`
	Remote  string `json:"remote"`
	Branch  string `json:"branch"`
}

type GitPushResponse struct {
	Commit string `json:"commit"`
}

type RunTestsRequest struct {
	Kind string `json:"kind"`
	Cwd  string `json:"cwd"`
}
