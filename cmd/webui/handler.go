package main

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deskfit/deskfit-mcp-server/metrics"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<]+`)

// urlize wraps bare URLs in escaped text with anchor tags.
func urlize(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	linked := urlPattern.ReplaceAllString(escaped,
		`<a class="result-link" href="$0" target="_blank" rel="noopener">$0</a>`)
	return template.HTML(linked)
}

// WebHandler serves the command box UI and the image converter endpoint.
type WebHandler struct {
	dispatcher *Dispatcher
	keywords   map[string]string
	tmpl       *template.Template
	logger     *slog.Logger
	bootID     string
}

func NewWebHandler(dispatcher *Dispatcher, keywords map[string]string, logger *slog.Logger, bootID string) (*WebHandler, error) {
	tmpl, err := template.New("index").Funcs(template.FuncMap{"urlize": urlize}).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &WebHandler{
		dispatcher: dispatcher,
		keywords:   keywords,
		tmpl:       tmpl,
		logger:     logger,
		bootID:     bootID,
	}, nil
}

// Routes registers all HTTP routes on the gin engine.
func (h *WebHandler) Routes(engine *gin.Engine) {
	engine.Use(h.observe)
	engine.GET("/", h.index)
	engine.POST("/", h.index)
	engine.POST("/image-convert", h.imageConvert)
	engine.GET("/healthz", h.healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// observe records request metrics for every route.
func (h *WebHandler) observe(c *gin.Context) {
	start := time.Now()
	c.Next()
	metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, c.FullPath()).Observe(time.Since(start).Seconds())
}

// pageData is everything the index template needs.
type pageData struct {
	Query    string
	Tool     string
	Result   string
	IsImage  bool
	ImageSrc template.URL
	Error    string
	BootID   string
}

func (h *WebHandler) index(c *gin.Context) {
	data := pageData{BootID: h.bootID}

	if c.Request.Method == http.MethodPost {
		data.Query = c.PostForm("query")
		tool, arg, ok := ParseCommand(data.Query, h.keywords)
		if !ok {
			data.Error = fmt.Sprintf("Unknown command: %q. Start with a tool keyword like 'weather', 'news', or 'qr code'.", data.Query)
		} else {
			data.Tool = tool
			result, err := h.dispatcher.Dispatch(c.Request.Context(), tool, arg)
			if err != nil {
				h.logger.Warn("Command failed", "tool", tool, "error", err)
				data.Error = fmt.Sprintf("Error executing %s: %v", tool, err)
			} else {
				data.Result = result.Text
				data.IsImage = result.IsImage
				if result.IsImage {
					data.ImageSrc = template.URL("data:" + result.MimeType + ";base64," + result.Base64Data)
				}
			}
		}
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(c.Writer, data); err != nil {
		h.logger.Error("Template render failed", "error", err)
	}
}

func (h *WebHandler) imageConvert(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image upload"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading upload: " + err.Error()})
		return
	}

	format := c.PostForm("convert_to")
	result, err := h.dispatcher.ConvertUpload(c.Request.Context(),
		base64.StdEncoding.EncodeToString(raw), format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"download_name": "converted." + result.TargetFormat,
		"mime_type":     result.MimeType,
		"base64_data":   result.Base64Data,
	})
}

func (h *WebHandler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "boot_id": h.bootID})
}
