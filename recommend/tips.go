package recommend

import "github.com/aeo-audit/backend/scoring"

// tips maps category and sub-category to tiered improvement advice. Keys
// match the sub-score names produced by the scorers.
var tips = map[string]map[string]subCategoryTips{
	scoring.CategoryAnswerability: {
		"direct_answer_presence": {
			title: "Direct Answer Presence",
			low: []string{
				"Add clear, direct answers at the beginning of your content",
				"Create summary boxes or callout sections with key answers",
				"Structure content answer-first (inverted pyramid)",
			},
			medium: []string{
				"Enhance existing answers with more specificity",
				"Add snippet-friendly answer blocks of 40-60 words",
			},
			high: []string{
				"Maintain answer quality and freshness",
			},
		},
		"question_coverage": {
			title: "Question Coverage",
			low: []string{
				"Add an FAQ section with 10+ relevant questions",
				"Use question-style H2/H3 headings",
				"Address who, what, when, where, why, and how questions",
			},
			medium: []string{
				"Expand the FAQ with long-tail question variations",
				"Add comparison questions (X vs Y)",
			},
			high: []string{
				"Keep questions updated based on search trends",
			},
		},
		"answer_conciseness": {
			title: "Answer Conciseness",
			low: []string{
				"Add TL;DR or summary sections",
				"Break long paragraphs into chunks of 3-4 sentences",
				"Keep paragraphs under 100 words",
			},
			medium: []string{
				"Add quick-answer boxes for featured snippets",
				"Use tables for comparison data",
			},
			high: []string{
				"Optimize for voice search with short spoken answers",
			},
		},
		"answer_block_formatting": {
			title: "Answer Block Formatting",
			low: []string{
				"Use blockquote tags for highlighted answers",
				"Use semantic HTML5 elements like article and section",
				"Emphasize key statements with strong or em tags",
			},
			medium: []string{
				"Style answer blocks so they stand out visually",
			},
			high: []string{
				"A/B test different formatting styles",
			},
		},
	},
	scoring.CategoryStructuredData: {
		"basic_presence": {
			title: "Schema Presence",
			low: []string{
				"Add JSON-LD structured data for your page type",
				"Include a title and meta description on every page",
				"Validate markup with the Rich Results Test",
			},
			medium: []string{
				"Add a second schema block such as Organization or WebSite",
				"Include Open Graph title and description tags",
			},
			high: []string{
				"Monitor rich results performance in Search Console",
			},
		},
		"schema_quality": {
			title: "Schema Quality",
			low: []string{
				"Add Article or BlogPosting schema with headline and dates",
				"Include author as a Person schema",
				"Include publisher as an Organization schema with logo",
			},
			medium: []string{
				"Add BreadcrumbList schema for navigation",
				"Mark up instructional content with HowTo schema",
			},
			high: []string{
				"Keep schema fields complete as content changes",
			},
		},
		"faq_schema": {
			title: "FAQ Schema",
			low: []string{
				"Add FAQPage schema with JSON-LD",
				"Mark up at least 5 question and answer pairs",
				"Follow schema.org/FAQPage guidelines",
			},
			medium: []string{
				"Expand to 10+ FAQ items",
				"Provide detailed acceptedAnswer text for every question",
			},
			high: []string{
				"Keep FAQ schema in sync with visible content",
			},
		},
		"social_metadata": {
			title: "Social Metadata",
			low: []string{
				"Add Open Graph title, description, and type tags",
				"Add a twitter:card meta tag",
			},
			medium: []string{
				"Add og:image with a high quality preview image",
			},
			high: []string{
				"Audit social previews after major redesigns",
			},
		},
	},
	scoring.CategoryAuthority: {
		"author_information": {
			title: "Author Information",
			low: []string{
				"Add author bylines to all articles",
				"Create author bio pages with credentials",
				"Add author schema inside your Article JSON-LD",
			},
			medium: []string{
				"Include author expertise, experience, and education",
				"Link author profiles with sameAs",
			},
			high: []string{
				"Build out comprehensive author portfolio pages",
			},
		},
		"publication_dates": {
			title: "Publication Dates",
			low: []string{
				"Add a published date to all content",
				"Show the last modified date prominently",
				"Include datePublished and dateModified in schema markup",
			},
			medium: []string{
				"Add last-reviewed dates for evergreen content",
			},
			high: []string{
				"Automate freshness stamps on republish",
			},
		},
		"citations_sources": {
			title: "Citations & Sources",
			low: []string{
				"Add at least 3-5 external citations per article",
				"Link to authoritative sources such as .gov and .edu sites",
				"Add a references section at the bottom",
			},
			medium: []string{
				"Cite primary sources rather than secondary coverage",
				"Add publication dates to citations",
			},
			high: []string{
				"Check and repair broken citation links regularly",
			},
		},
		"organization_info": {
			title: "Organization Info",
			low: []string{
				"Add Organization schema with name and logo",
				"Create an About page with team credentials",
				"Display contact information prominently",
			},
			medium: []string{
				"Add sameAs links to official social profiles",
			},
			high: []string{
				"Keep organization details consistent across properties",
			},
		},
	},
	scoring.CategoryContentQuality: {
		"content_depth": {
			title: "Content Depth",
			low: []string{
				"Expand content to at least 1000 words for informational pages",
				"Use H2 sections to cover the topic comprehensively",
				"Add examples, case studies, or statistics",
			},
			medium: []string{
				"Create pillar content of 2000+ words",
				"Add multimedia such as images and diagrams",
			},
			high: []string{
				"Add original research or proprietary data",
			},
		},
		"unique_value": {
			title: "Unique Value",
			low: []string{
				"Add original insights or perspectives",
				"Present data in tables and lists",
				"Include custom graphics and diagrams",
			},
			medium: []string{
				"Conduct original research or surveys",
				"Add expert commentary",
			},
			high: []string{
				"Publish industry-first content others will cite",
			},
		},
		"freshness": {
			title: "Content Freshness",
			low: []string{
				"Update content at least annually",
				"Remove outdated information",
				"Surface the modified date in schema markup",
			},
			medium: []string{
				"Set up a content review schedule",
				"Update statistics and screenshots",
			},
			high: []string{
				"Highlight recent updates near the headline",
			},
		},
	},
	scoring.CategoryCitationability: {
		"clear_statements_of_fact": {
			title: "Clear Statements of Fact",
			low: []string{
				"Add factual statements with specific numbers",
				"Emphasize key claims with strong or em tags",
				"Include statistics with sources",
			},
			medium: []string{
				"Create data visualizations for key findings",
			},
			high: []string{
				"Publish citation-worthy original statistics",
			},
		},
		"data_tables_lists": {
			title: "Data Tables & Lists",
			low: []string{
				"Add 2-3 data tables per article",
				"Use bullet points and numbered lists for steps",
				"Use proper thead and tbody table structure",
			},
			medium: []string{
				"Add comparison tables for alternatives",
			},
			high: []string{
				"Build interactive data explorers",
			},
		},
		"quotable_blocks": {
			title: "Quotable Blocks",
			low: []string{
				"Use blockquote tags for liftable statements",
				"Keep key takeaways to one or two sentences",
			},
			medium: []string{
				"Add pull-quotes for the strongest claims",
			},
			high: []string{
				"Track which passages get quoted and refine them",
			},
		},
		"stable_anchors": {
			title: "Stable Anchors",
			low: []string{
				"Add id attributes to section headings",
				"Keep heading ids stable across edits",
			},
			medium: []string{
				"Add a table of contents with jump links",
			},
			high: []string{
				"Preserve old anchors with redirects after restructuring",
			},
		},
	},
	scoring.CategoryTechnical: {
		"security_https": {
			title: "HTTPS & Security",
			low: []string{
				"Install an SSL certificate",
				"Redirect HTTP to HTTPS with 301s",
				"Fix mixed content warnings",
			},
			medium: []string{
				"Implement an HSTS header",
			},
			high: []string{
				"Run regular security audits",
			},
		},
		"page_performance": {
			title: "Page Performance",
			low: []string{
				"Compress images and serve modern formats",
				"Minify CSS, JavaScript, and HTML",
				"Use a CDN for static assets",
			},
			medium: []string{
				"Reduce server response time below 500ms",
				"Remove render-blocking resources",
			},
			high: []string{
				"Target Core Web Vitals thresholds",
			},
		},
		"semantic_html": {
			title: "Semantic HTML",
			low: []string{
				"Use exactly one H1 per page",
				"Use H2 headings for main sections",
				"Wrap primary content in main or article elements",
			},
			medium: []string{
				"Follow heading hierarchy without skipping levels",
			},
			high: []string{
				"Audit landmark structure with accessibility tools",
			},
		},
		"mobile_friendly": {
			title: "Mobile Friendliness",
			low: []string{
				"Add a responsive viewport meta tag",
				"Ensure text is readable without zooming",
				"Make tap targets large enough",
			},
			medium: []string{
				"Test layouts on real mobile devices",
			},
			high: []string{
				"Test on slow connections and low-end devices",
			},
		},
		"meta_description": {
			title: "Meta Description",
			low: []string{
				"Add a meta description of 50-160 characters",
				"Summarize the page answer in the description",
			},
			medium: []string{
				"Include the primary question phrasing in the description",
			},
			high: []string{
				"Refresh descriptions when content changes",
			},
		},
	},
}
