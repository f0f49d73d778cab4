package server

import (
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/agusespa/testsmith/internal/assistant"
	"github.com/agusespa/testsmith/internal/templates"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindOptional decodes a JSON body that callers may omit entirely.
func bindOptional(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) generateTestCases(c *gin.Context) {
	var req GenerateTestCasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	a, err := s.assistantFor(req.Provider, req.Model)
	if err != nil {
		s.fail(c, err)
		return
	}

	lang := req.Lang
	if lang == "" {
		lang = "ru"
	}
	set, err := a.GenerateTestCases(c.Request.Context(), req.Description, lang, req.Format == "markdown")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

func (s *Server) generateTestCode(c *gin.Context) {
	var req GenerateTestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	lang, err := types.ParseTargetLanguage(req.Language)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	a, err := s.assistantFor(req.Provider, req.Model)
	if err != nil {
		s.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	code, err := a.GenerateCode(ctx, req.TestCase, lang, req.BaseURL)
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.Format && s.deps.Formatter != nil {
		code = s.deps.Formatter.Format(ctx, code, lang)
	}

	resp := GenerateTestCodeResponse{
		Code:              code,
		SuggestedFilename: assistant.SuggestedFilename(req.TestCase, lang),
	}

	if s.deps.Checker != nil {
		report, err := s.deps.Checker.Check(code, lang)
		if err != nil {
			s.logger.Warn("syntax check failed", "language", lang, "error", err)
		} else {
			resp.Syntax = &report
		}
	}

	if req.TargetPath != "" {
		saved, err := s.deps.Storage.Save(ctx, req.TargetPath, code)
		if err != nil {
			s.fail(c, err)
			return
		}
		resp.SavedPath = saved
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) generateDemoApp(c *gin.Context) {
	var req GenerateDemoAppRequest
	if err := bindOptional(c, &req); err != nil {
		s.badRequest(c, err)
		return
	}
	if req.OutDir == "" {
		req.OutDir = "demo_app"
	}

	a, err := s.assistantFor(req.Provider, req.Model)
	if err != nil {
		s.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	files, err := a.GenerateDemoApp(ctx, req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := GenerateDemoAppResponse{Saved: make([]string, 0, len(types.DemoAppFiles))}
	for _, name := range types.DemoAppFiles {
		rel := path.Join(req.OutDir, name)
		if _, err := s.deps.Storage.Save(ctx, rel, files[name]); err != nil {
			s.fail(c, err)
			return
		}
		resp.Saved = append(resp.Saved, rel)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) reviewTest(c *gin.Context) {
	var req ReviewTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	a, err := s.assistantFor(req.Provider, req.Model)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := a.ReviewCode(c.Request.Context(), req.Code)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) saveLocal(c *gin.Context) {
	var req SaveLocalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	saved, err := s.deps.Storage.Save(c.Request.Context(), req.RelativePath, req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SaveLocalResponse{Path: saved})
}

func (s *Server) saveGithub(c *gin.Context) {
	var req SaveGithubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if s.deps.Github == nil {
		s.fail(c, errors.New("github saving is not configured"))
		return
	}

	gh, err := s.deps.Github()
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := gh.CreateOrUpdateFile(c.Request.Context(), req.Owner, req.Repo, req.Path, req.Content, req.Message, req.Branch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) gitPush(c *gin.Context) {
	var req GitPushRequest
	if err := bindOptional(c, &req); err != nil {
		s.badRequest(c, err)
		return
	}

	sha, err := s.deps.Git.AddCommitPush(c.Request.Context(), req.Message, req.Remote, req.Branch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GitPushResponse{Commit: sha})
}

func (s *Server) runTests(c *gin.Context) {
	var req RunTestsRequest
	if err := bindOptional(c, &req); err != nil {
		s.badRequest(c, err)
		return
	}
	if req.Kind == "" {
		req.Kind = "ts"
	}
	kind, err := tools.ParseTestKind(req.Kind)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, s.deps.Runner.Run(c.Request.Context(), kind, req.Cwd))
}

func (s *Server) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": templates.List()})
}

func (s *Server) renderTemplate(c *gin.Context) {
	params := templates.Params{}
	if err := bindOptional(c, &params); err != nil {
		s.badRequest(c, err)
		return
	}

	tc, err := templates.Render(c.Param("name"), params)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tc)
}
