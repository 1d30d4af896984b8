package rod

// ResultsHTML mimics the DuckDuckGo HTML endpoint.
const ResultsHTML = `<!DOCTYPE html>
<html>
<head><title>golang at DuckDuckGo</title></head>
<body>
	<div class="result result--ad">
		<a class="result__a" href="https://ads.example.com">Sponsored</a>
		<a class="result__snippet">Buy now</a>
	</div>
	<div class="result web-result">
		<h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F">The Go Programming Language</a></h2>
		<a class="result__snippet">Go is an open source programming language.</a>
	</div>
	<div class="result web-result">
		<h2><a class="result__a" href="https://pkg.go.dev/">Go Packages</a></h2>
		<a class="result__snippet">Discover packages.</a>
	</div>
</body>
</html>`
