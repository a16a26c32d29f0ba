package demoserver

// PageVersion is one rendition of a page.
type PageVersion struct {
	HTML        string
	ContentType string
	Headers     map[string]string
}

// PageDefinition holds all versions of a single page. Versions let a demo
// edit a page between two scans of the same session.
type PageDefinition struct {
	Path        string
	Description string
	Versions    map[int]PageVersion
}

// GetAllPages returns all demo page definitions.
func GetAllPages() []PageDefinition {
	return []PageDefinition{
		getIndexPage(),
		getFluPage(),
		getDetoxPage(),
		getVitaminDPage(),
		getSportsPage(),
	}
}

func getIndexPage() PageDefinition {
	return PageDefinition{
		Path:        "/",
		Description: "Index of the sample articles",
		Versions: map[int]PageVersion{
			1: {HTML: `<!DOCTYPE html>
<html>
<head><title>Sample Reader</title></head>
<body>
  <h1>Sample Reader</h1>
  <ul>
    <li><a href="/articles/flu-basics">Flu basics</a></li>
    <li><a href="/articles/detox-tea">Detox tea</a></li>
    <li><a href="/articles/vitamin-d">Vitamin D</a></li>
    <li><a href="/sports/league-table">League table</a></li>
  </ul>
</body>
</html>`},
		},
	}
}

// ===== FLU BASICS =====
// v1 is a careful article; v2 is the same page after a sensational rewrite.
func getFluPage() PageDefinition {
	return PageDefinition{
		Path:        "/articles/flu-basics",
		Description: "Flu article: v1 credible, v2 rewritten with sensational claims and product links",
		Versions: map[int]PageVersion{
			1: {HTML: `<!DOCTYPE html>
<html>
<head>
  <title>Flu basics</title>
  <meta name="description" content="Flu symptoms and treatment">
</head>
<body>
  <article>
    <h1>Flu basics: symptoms and treatment</h1>
    <p class="byline">Written by Dr. Ana Ruiz</p>
    <p>Flu symptoms usually include fever, cough and tiredness. Most people recover at home with rest and fluids.</p>
    <p>Antiviral treatment works best when started early. The yearly vaccine lowers the chance of severe illness.</p>
    <p>See the <a href="https://www.cdc.gov/flu/symptoms/index.html">CDC flu guidance</a> for details.</p>
    <p>If symptoms get worse, consult your doctor.</p>
  </article>
</body>
</html>`},
			2: {HTML: `<!DOCTYPE html>
<html>
<head><title>Flu basics</title></head>
<body>
  <article>
    <h1>Beat the flu with this miracle cure</h1>
    <p>Flu symptoms vanish with our miracle cure tonic. Forget the vaccine.</p>
    <p>Even the <a href="https://www.cdc.gov/flu/symptoms/index.html">CDC</a> can't explain it.</p>
    <p><a href="/shop/tonic">Buy now</a> and save. <a href="/shop/bundle">Buy now</a> the family bundle.</p>
    <p>Supplies are limited, buy today.</p>
  </article>
</body>
</html>`},
		},
	}
}

// ===== DETOX TEA =====
func getDetoxPage() PageDefinition {
	return PageDefinition{
		Path:        "/articles/detox-tea",
		Description: "Commercial detox page with no sources or author",
		Versions: map[int]PageVersion{
			1: {HTML: `<!DOCTYPE html>
<html>
<head><title>Detox tea</title></head>
<body>
  <article>
    <h1>The detox tea that will flush toxins overnight</h1>
    <p>Our herbal blend supports liver health and will flush toxins while you sleep.</p>
    <p>Buy one pack, buy two and get a third free. Order now before stock runs out.</p>
    <button>Add to cart</button>
  </article>
</body>
</html>`},
		},
	}
}

// ===== VITAMIN D =====
func getVitaminDPage() PageDefinition {
	return PageDefinition{
		Path:        "/articles/vitamin-d",
		Description: "Vitamin D explainer with a meta author and a study link",
		Versions: map[int]PageVersion{
			1: {HTML: `<!DOCTYPE html>
<html>
<head>
  <title>Vitamin D in winter</title>
  <meta name="author" content="Kim Park">
</head>
<body>
  <article>
    <h1>Vitamin D in winter</h1>
    <p>Vitamin D levels drop in winter because there is less sunlight.</p>
    <p>A daily supplement can help people with low levels, according to a
    <a href="https://pubmed.ncbi.nlm.nih.gov/12345678/">published review</a>.</p>
  </article>
</body>
</html>`},
		},
	}
}

// ===== SPORTS =====
func getSportsPage() PageDefinition {
	return PageDefinition{
		Path:        "/sports/league-table",
		Description: "Page with no health content",
		Versions: map[int]PageVersion{
			1: {HTML: `<!DOCTYPE html>
<html>
<head><title>League table</title></head>
<body>
  <h1>Weekend match report</h1>
  <p>The home side won three to one after a late goal. Fixtures for next week are below.</p>
</body>
</html>`},
		},
	}
}
