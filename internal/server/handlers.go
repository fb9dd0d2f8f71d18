package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"erd-builder/internal/ddl"
	"erd-builder/internal/layout"
	"erd-builder/internal/sample"
	"erd-builder/internal/schema"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	parser ddl.Parser
}

func NewHandler() *Handler {
	return &Handler{parser: ddl.RegexParser{}}
}

type parseRequest struct {
	SQL      string `json:"sql"`
	Classify bool   `json:"classify"`
}

type layoutRequest struct {
	Mode          layout.Mode           `json:"mode"`
	Center        string                `json:"center"`
	Tables        []schema.Table        `json:"tables"`
	Relationships []schema.Relationship `json:"relationships"`
}

type classifyRequest struct {
	Name    string          `json:"name" binding:"required"`
	Columns []schema.Column `json:"columns"`
}

type mergeRequest struct {
	Document      schema.Document       `json:"document"`
	Tables        []schema.Table        `json:"tables"`
	Relationships []schema.Relationship `json:"relationships"`
}

// Health handles GET /
func (h *Handler) Health(c *gin.Context) {
	Success(c, http.StatusOK, gin.H{
		"service": "erd-builder",
		"modes":   layout.Modes,
	}, "ok")
}

// ParseDDL handles POST /api/v1/ddl/parse
func (h *Handler) ParseDDL(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	res := h.parser.Parse(req.SQL)
	if req.Classify {
		for i := range res.Tables {
			res.Tables[i].Kind = schema.DetectTableKind(res.Tables[i].Name, res.Tables[i].Columns)
		}
	}

	msg := fmt.Sprintf("Parsed %d tables, %d relationships", len(res.Tables), len(res.Relationships))
	if len(res.Tables) == 0 {
		msg = "No tables found"
	}
	Success(c, http.StatusOK, res, msg)
}

// Layout handles POST /api/v1/layout
func (h *Handler) Layout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if req.Mode == "" {
		req.Mode = layout.ModeForce
	}

	pos, err := layout.Layout(req.Mode, req.Tables, req.Relationships, layout.Options{Center: req.Center})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, layout.ErrNothingToOrganize) || errors.Is(err, layout.ErrNoFactCenter) || errors.Is(err, layout.ErrNoFactTables) {
			status = http.StatusUnprocessableEntity
		}
		Fail(c, status, err, "Layout failed")
		return
	}

	Success(c, http.StatusOK, gin.H{
		"positions": pos,
		"tables":    layout.Apply(req.Tables, pos),
	}, fmt.Sprintf("Organized %d tables (%s)", len(pos), req.Mode))
}

// ClassifyTable handles POST /api/v1/tables/classify
func (h *Handler) ClassifyTable(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	Success(c, http.StatusOK, gin.H{
		"name": req.Name,
		"type": schema.DetectTableKind(req.Name, req.Columns),
	}, "")
}

// MergeDocument handles POST /api/v1/documents/merge
func (h *Handler) MergeDocument(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	doc, stats := schema.Merge(req.Document, req.Tables, req.Relationships)
	Success(c, http.StatusOK, gin.H{
		"document": doc,
		"stats":    stats,
	}, fmt.Sprintf("Added %d tables, %d relationships", stats.TablesAdded+stats.TablesRenamed, stats.RelationshipsAdded))
}

// exportDocument binds the posted document and narrows it to ?group= when given.
func exportDocument(c *gin.Context) (schema.Document, bool) {
	var doc schema.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return doc, false
	}
	if group := c.Query("group"); group != "" {
		sub, err := schema.DataProduct(doc, group)
		if err != nil {
			Fail(c, http.StatusNotFound, err, "Unknown data product")
			return doc, false
		}
		doc = sub
	}
	return doc, true
}

// ExportSQL handles POST /api/v1/export/sql
func (h *Handler) ExportSQL(c *gin.Context) {
	doc, ok := exportDocument(c)
	if !ok {
		return
	}

	sql := ddl.ExportSQL(doc)
	if n := c.Query("sample_rows"); n != "" {
		count, err := strconv.Atoi(n)
		if err != nil || count < 0 {
			Fail(c, http.StatusBadRequest, err, "sample_rows must be a non-negative integer")
			return
		}
		seed, err := strconv.ParseInt(c.DefaultQuery("seed", "1"), 10, 64)
		if err != nil {
			Fail(c, http.StatusBadRequest, err, "seed must be an integer")
			return
		}
		sql += sample.InsertSQL(sample.NewGenerator(seed).Generate(doc, count))
	}

	log.Printf("[Export] SQL for %d tables", len(doc.Tables))
	Success(c, http.StatusOK, gin.H{"sql": sql}, "")
}

// ExportMermaid handles POST /api/v1/export/mermaid
func (h *Handler) ExportMermaid(c *gin.Context) {
	doc, ok := exportDocument(c)
	if !ok {
		return
	}
	Success(c, http.StatusOK, gin.H{"mermaid": ddl.ExportMermaid(doc)}, "")
}
