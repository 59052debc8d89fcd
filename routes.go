package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/analyst-dashboard/internal/charts"
	"github.com/Zachkp/analyst-dashboard/internal/fetchlog"
	"github.com/Zachkp/analyst-dashboard/internal/gateway"
)

type provenanceSource interface {
	Stats(ctx context.Context) (*fetchlog.Stats, error)
}

type server struct {
	gateway    *gateway.Gateway
	provenance provenanceSource
	metrics    http.Handler
	logger     logrus.FieldLogger
}

// section is one dashboard tab.
type section struct {
	Dataset  gateway.Dataset
	Title    string
	HasChart bool
}

var sections = []section{
	{Dataset: gateway.DatasetCrypto, Title: "Crypto Markets"},
	{Dataset: gateway.DatasetExchangeRates, Title: "Exchange Rates"},
	{Dataset: gateway.DatasetStocks, Title: "Stocks"},
	{Dataset: gateway.DatasetMarketIndices, Title: "Market Indices"},
	{Dataset: gateway.DatasetEconomicCalendar, Title: "Economic Calendar"},
	{Dataset: gateway.DatasetHeadlines, Title: "Headlines"},
	{Dataset: gateway.DatasetWeather, Title: "Weather"},
	{Dataset: gateway.DatasetAttrition, Title: "HR Attrition"},
}

func init() {
	for i := range sections {
		_, sections[i].HasChart = charts.Plots[sections[i].Dataset]
	}
}

func sectionFor(d gateway.Dataset) (section, bool) {
	for _, s := range sections {
		if s.Dataset == d {
			return s, true
		}
	}
	return section{}, false
}

func newRouter(s *server) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"aboutMeContent":  AboutMe,
			"projectContents": Projects,
			"skills":          Skills,
			"sections":        sections,
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/metrics", gin.WrapH(s.metrics))

	// HTMX fragments, one per dashboard tab
	r.GET("/fragments/:dataset", s.datasetFragment)

	api := r.Group("/api")
	api.GET("/datasets", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"datasets": gateway.Datasets})
	})
	api.GET("/datasets/:dataset", s.datasetJSON)
	api.GET("/weather", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.gateway.Weather(c.Request.Context(), c.Query("city")))
	})

	r.GET("/charts/:file", s.chartPNG)

	setupProvenanceRoutes(r, s)

	return r
}

func (s *server) datasetFragment(c *gin.Context) {
	dataset := gateway.Dataset(c.Param("dataset"))
	sec, ok := sectionFor(dataset)
	if !ok {
		c.String(http.StatusNotFound, "Unknown dataset")
		return
	}

	if dataset == gateway.DatasetWeather {
		weather := s.gateway.Weather(c.Request.Context(), c.Query("city"))
		c.HTML(http.StatusOK, "weather.html", gin.H{
			"weather": weather,
			"cities":  gateway.Cities,
		})
		return
	}

	table, err := s.gateway.Table(c.Request.Context(), gateway.Request{Dataset: dataset})
	if err != nil {
		c.String(http.StatusNotFound, "Unknown dataset")
		return
	}

	// The chart is drawn from the same table so both show one fetch.
	var chart template.URL
	if sec.HasChart && !table.Empty() {
		chart = s.inlineChart(table)
	}

	c.HTML(http.StatusOK, "dataset-table.html", gin.H{
		"section": sec,
		"table":   table,
		"chart":   chart,
	})
}

// inlineChart renders t as a data URI, or "" when it cannot be drawn.
func (s *server) inlineChart(t gateway.Table) template.URL {
	var buf bytes.Buffer
	if err := charts.Render(&buf, t); err != nil {
		if !errors.Is(err, charts.ErrNoData) {
			s.logger.WithError(err).WithField("dataset", t.Dataset).Error("Error rendering chart")
		}
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func (s *server) datasetJSON(c *gin.Context) {
	table, err := s.gateway.Table(c.Request.Context(), gateway.Request{
		Dataset: gateway.Dataset(c.Param("dataset")),
		City:    c.Query("city"),
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *server) chartPNG(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "charts are served as .png"})
		return
	}
	dataset := gateway.Dataset(name)
	if _, ok := charts.Plots[dataset]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no chart for " + name})
		return
	}

	table, err := s.gateway.Table(c.Request.Context(), gateway.Request{Dataset: dataset})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := charts.Render(&buf, table); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		s.logger.WithError(err).WithField("dataset", dataset).Error("Error rendering chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render chart"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
