package main

var (
	AboutMe = `I'm a data analyst who likes turning messy, real-world numbers into something a person can read at a glance.
	Most of my work starts with a question from the business side and ends with a dashboard, a model, or a short report
	that answers it. I care about where data comes from as much as what it says, which is why every table on this page
	can tell you whether it was fetched live or served from a fallback snapshot.
	Outside of work I follow markets, read about statistics, and keep a long list of datasets I want to explore.`

	Skills = []string{
		"SQL", "Go", "Python", "Pandas", "Power BI", "Tableau",
		"Statistics", "A/B Testing", "Forecasting", "ETL pipelines",
	}

	Projects = []string{
		`An HR analytics study that models employee attrition from engagement surveys and tenure data,
	highlighting the departments and salary bands with the highest turnover risk.`,

		`A market data dashboard that pulls crypto prices and exchange rates from public APIs,
	formats them for display, and falls back to cached snapshots when a provider is unreachable.`,

		`A customer segmentation project built on RFM scoring and cohort retention curves,
	used to prioritize re-engagement campaigns for an e-commerce catalog.`,

		`A modern, responsive portfolio website built with Go, Gin framework, and HTMX for
	dynamic interactions, with server-rendered charts and Prometheus metrics.`,
	}
)
