package gateway

// Fallback tables. Each constructor returns a fresh slice so callers may
// modify what they receive.

func fallbackCrypto() []CryptoQuote {
	return []CryptoQuote{
		{Name: "Bitcoin", Symbol: "BTC", Price: "$85,423.45", Change24h: "+2.34%", MarketCap: "$1,680,000,000,000", Volume24h: "$24,500,000,000"},
		{Name: "Ethereum", Symbol: "ETH", Price: "$4,567.89", Change24h: "+1.87%", MarketCap: "$548,700,000,000", Volume24h: "$12,300,000,000"},
		{Name: "Solana", Symbol: "SOL", Price: "$245.67", Change24h: "+5.23%", MarketCap: "$107,300,000,000", Volume24h: "$3,200,000,000"},
		{Name: "BNB", Symbol: "BNB", Price: "$678.32", Change24h: "-0.54%", MarketCap: "$103,200,000,000", Volume24h: "$1,800,000,000"},
		{Name: "XRP", Symbol: "XRP", Price: "$1.23", Change24h: "-1.25%", MarketCap: "$67,400,000,000", Volume24h: "$980,000,000"},
	}
}

func fallbackExchangeRates(stamp string) []ExchangeRate {
	return []ExchangeRate{
		{Pair: "USD/TRY", Rate: "34.2500", InverseRate: "0.0292", Updated: stamp},
		{Pair: "USD/EUR", Rate: "0.9234", InverseRate: "1.0829", Updated: stamp},
		{Pair: "USD/GBP", Rate: "0.7845", InverseRate: "1.2747", Updated: stamp},
		{Pair: "USD/JPY", Rate: "149.8500", InverseRate: "0.0067", Updated: stamp},
		{Pair: "USD/CAD", Rate: "1.3567", InverseRate: "0.7371", Updated: stamp},
	}
}

func fallbackWeather(city, stamp string) Weather {
	return Weather{
		City:        city,
		Temperature: 22,
		Description: "Partly Cloudy",
		Humidity:    65,
		WindSpeed:   12,
		Pressure:    1013,
		Timestamp:   stamp,
	}
}

func fallbackHeadlines(stamp string) []Headline {
	return []Headline{
		{Title: "New Developments in the Tech Sector", Description: "Latest trends in AI and machine learning...", Source: "Tech News", Published: stamp},
		{Title: "Markets Today", Description: "Recent moves in global markets and analysis...", Source: "Finance Today", Published: stamp},
		{Title: "Innovations in Data Science", Description: "Big data analysis and visualization techniques...", Source: "Data Science Weekly", Published: stamp},
	}
}

func fallbackStocks() []StockQuote {
	return []StockQuote{
		{Ticker: "AAPL", Price: "$175.45", Change: "+2.34%", Volume: "45,234,567"},
		{Ticker: "GOOGL", Price: "$142.78", Change: "+1.87%", Volume: "23,456,789"},
		{Ticker: "MSFT", Price: "$378.92", Change: "-0.45%", Volume: "18,765,432"},
		{Ticker: "TSLA", Price: "$245.67", Change: "+3.21%", Volume: "67,890,123"},
		{Ticker: "NVDA", Price: "$487.23", Change: "+4.56%", Volume: "34,567,890"},
	}
}

func fallbackEconomicCalendar() []EconomicEvent {
	return []EconomicEvent{
		{Time: "08:00", Country: "Turkey", Indicator: "CPI", Importance: "High", Actual: "9.8%", Forecast: "10.1%"},
		{Time: "10:00", Country: "Germany", Indicator: "Unemployment Rate", Importance: "Medium", Actual: "5.2%", Forecast: "5.3%"},
		{Time: "15:30", Country: "USA", Indicator: "GDP", Importance: "High", Actual: "2.1%", Forecast: "1.9%"},
		{Time: "17:00", Country: "Eurozone", Indicator: "Interest Rate Decision", Importance: "High", Actual: "4.25%", Forecast: "4.25%"},
		{Time: "09:30", Country: "UK", Indicator: "PMI", Importance: "Medium", Actual: "51.2", Forecast: "50.8"},
	}
}

func fallbackMarketIndices() []MarketIndex {
	return []MarketIndex{
		{Index: "BIST 100", Last: "9,452.87", High: "9,523.45", Low: "9,380.21", Change: "+124.56", ChangePercent: "+1.32%", Time: "17:45:00"},
		{Index: "S&P 500", Last: "5,875.23", High: "5,890.12", Low: "5,840.33", Change: "+25.78", ChangePercent: "+0.44%", Time: "17:45:00"},
		{Index: "DAX", Last: "18,980.54", High: "19,020.87", Low: "18,920.13", Change: "+130.42", ChangePercent: "+0.69%", Time: "17:45:00"},
		{Index: "Nikkei 225", Last: "41,320.67", High: "41,450.23", Low: "41,120.34", Change: "-87.45", ChangePercent: "-0.21%", Time: "09:45:00"},
		{Index: "FTSE 100", Last: "8,234.12", High: "8,256.78", Low: "8,201.34", Change: "+45.87", ChangePercent: "+0.56%", Time: "16:45:00"},
	}
}
