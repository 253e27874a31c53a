package fixtures

import "funnelzip-demo/internal/models"

var defaultSamples = []models.ProductSample{
	{
		Title:              "Creatine Monohydrate Powder",
		Details:            "Pure creatine monohydrate powder for muscle growth and strength. Supports athletic performance and recovery.",
		DefaultPlatformIDs: []string{"google", "amazon", "meta"},
		RiskLevel:          models.RiskHigh,
	},
	{
		Title:              "Vitamin C 1000mg Tablets",
		Details:            "High-potency vitamin C supplement for immune support. Contains 1000mg of ascorbic acid.",
		DefaultPlatformIDs: []string{"google", "amazon"},
		RiskLevel:          models.RiskMedium,
	},
}

var defaultPlatforms = []models.PlatformOption{
	{ID: "google", DisplayName: "Google", IconRef: "https://upload.wikimedia.org/wikipedia/commons/2/2f/Google_2015_logo.svg"},
	{ID: "amazon", DisplayName: "Amazon", IconRef: "https://upload.wikimedia.org/wikipedia/commons/a/a9/Amazon_logo.svg"},
	{ID: "meta", DisplayName: "Meta", IconRef: "https://upload.wikimedia.org/wikipedia/commons/7/7b/Meta_Platforms_Inc._logo.svg"},
	{ID: "walmart", DisplayName: "Walmart", IconRef: "🏪"},
	{ID: "shopify", DisplayName: "Shop App", IconRef: "https://upload.wikimedia.org/wikipedia/commons/0/0e/Shopify_logo_2018.svg"},
	{ID: "tiktok", DisplayName: "TikTok", IconRef: "🎵"},
	{ID: "bigcommerce", DisplayName: "BigCommerce", IconRef: "https://logos-world.net/wp-content/uploads/2021/02/BigCommerce-Logo.png"},
	{ID: "ebay", DisplayName: "eBay", IconRef: "🛒"},
}

var defaultChecks = []models.CheckDescriptor{
	{
		Text:    "FDA, FTC, and DSHEA compliance validation",
		Icon:    "⚖️",
		Tooltip: "Validates health claims against FDA regulations, FTC advertising guidelines, and Dietary Supplement Health and Education Act requirements",
	},
	{
		Text:    "Platform-specific policy checks (Amazon, Google, Meta)",
		Icon:    "🛒",
		Tooltip: "Ensures your product listings comply with each platform's unique advertising and content policies",
	},
	{
		Text:    "AI-readiness and claim integrity analysis",
		Icon:    "🧠",
		Tooltip: "Optimizes content for AI search engines, voice assistants, and ensures factual accuracy of all product claims",
	},
	{
		Text:    "Search optimization and visibility signals",
		Icon:    "🔍",
		Tooltip: "Analyzes keywords, meta data, and content structure to maximize organic search visibility and ranking",
	},
	{
		Text:    "Trust markers and conversion optimization",
		Icon:    "✅",
		Tooltip: "Identifies opportunities to add certifications, testimonials, and trust signals that boost conversion rates",
	},
	{
		Text:    "Revenue risk assessment and prevention",
		Icon:    "📉",
		Tooltip: "Calculates potential revenue loss from compliance violations and provides prevention strategies",
	},
}

var defaultResults = models.ResultsPanel{
	Summary: []models.SummaryCard{
		{Value: "3", Label: "Critical Issues", Caption: "Require immediate attention", Icon: "🔴"},
		{Value: "12", Label: "Optimizations", Caption: "Performance improvements", Icon: "🟡"},
		{Value: "87%", Label: "Compliance Score", Caption: "(after applying recommendations)", Icon: "✅"},
	},
	CriticalIssues: []models.Issue{
		{
			ID:          "fda-violation",
			Title:       "FDA Health Claim Violation",
			Severity:    "Critical",
			Platform:    "All Platforms",
			Teaser:      `Contains prohibited phrases: "supports muscle growth", "enhances performance"`,
			Description: "Product description contains health claims that require FDA pre-approval. These claims can result in immediate listing removal and legal action.",
			Impact:      "Immediate listing suspension, potential legal liability",
			Solution:    `Replace with structure/function claims: "supports normal muscle function" or "intended for active individuals"`,
			Code: `// Current (Prohibited)
"Pure creatine monohydrate powder for muscle growth and strength.
Supports athletic performance and recovery."

// Compliant Alternative
"Pure creatine monohydrate powder intended for active individuals.
Supports normal muscle function during exercise."`,
		},
		{
			ID:          "meta-policy",
			Title:       "Meta Ads Policy Violation",
			Severity:    "Critical",
			Platform:    "Meta/Facebook",
			Teaser:      "Health benefit claims violate Meta advertising policies for supplements",
			Description: "Meta prohibits ads for supplements that make health benefit claims without proper disclaimers and substantiation.",
			Impact:      "Ad account suspension, campaign disapproval",
			Solution:    "Add required disclaimers and focus on ingredient benefits rather than health outcomes",
			Code: `// Add Required Disclaimer
"*This statement has not been evaluated by the FDA.
This product is not intended to diagnose, treat, cure, or prevent any disease."

// Focus on Ingredients
"Contains 5g of pure creatine monohydrate per serving"`,
		},
		{
			ID:          "trust-signals",
			Title:       "Missing Trust Signals",
			Severity:    "High",
			Platform:    "All Platforms",
			Teaser:      "No third-party certifications, lab testing, or quality badges displayed",
			Description: "Product lacks trust indicators that modern consumers expect, reducing conversion rates and platform ranking.",
			Impact:      "Lower conversion rates, reduced organic visibility",
			Solution:    "Add certifications, lab testing results, and quality badges",
			Code: `// Add Trust Elements
✓ Third-party tested for purity
✓ NSF Certified for Sport
✓ Made in FDA-registered facility
✓ Certificate of Analysis available`,
		},
	},
	Optimizations: models.OptimizationSummary{
		TitleOptimization: []models.TitleOptimization{
			{
				Platform:    "Amazon",
				Current:     "Creatine Monohydrate Powder (47 chars)",
				Optimized:   "Pure Creatine Monohydrate Powder 500g Unflavored (52 chars)",
				Status:      "Optimized",
				Limit:       "200 chars",
				Improvement: "Added key descriptors within limit",
			},
			{
				Platform:    "Google Shopping",
				Current:     "Creatine Monohydrate Powder (47 chars)",
				Optimized:   "Creatine Monohydrate Powder 500g Pure Unflavored (48 chars)",
				Status:      "Optimized",
				Limit:       "150 chars",
				Improvement: "Keyword-optimized for search",
			},
			{
				Platform:    "Meta Catalog",
				Current:     "Creatine Monohydrate Powder (47 chars)",
				Optimized:   "Pure Creatine Powder - 500g Unflavored (38 chars)",
				Status:      "Optimized",
				Limit:       "100 chars",
				Improvement: "Shortened for mobile display",
			},
		},
		KeywordAnalysis: []models.KeywordInsight{
			{Keyword: "pure creatine", Opportunity: "High", CurrentRank: "Not optimized", Potential: "+23% CTR improvement", SearchVolume: "12,000/month", Competition: "Medium"},
			{Keyword: "unflavored creatine", Opportunity: "Medium", CurrentRank: "Not optimized", Potential: "+15% CTR improvement", SearchVolume: "3,400/month", Competition: "Low"},
			{Keyword: "creatine monohydrate 500g", Opportunity: "High", CurrentRank: "Not optimized", Potential: "+31% CTR improvement", SearchVolume: "8,900/month", Competition: "Medium"},
		},
		PlatformRecommendations: []models.PlatformRecommendation{
			{
				Platform: "Amazon",
				Icon:     "🛒",
				Recommendations: []string{
					"Add A+ Content with ingredient sourcing details",
					`Include "Amazon's Choice" optimization keywords`,
					"Add bullet points highlighting purity and testing",
					`Optimize for voice search: "Alexa, order creatine"`,
				},
			},
			{
				Platform: "Google Shopping",
				Icon:     "🔍",
				Recommendations: []string{
					"Add structured data for rich snippets",
					`Optimize for "near me" supplement store searches`,
					"Include GTIN/UPC for better product matching",
					"Add seasonal keywords for fitness goals",
				},
			},
			{
				Platform: "Meta Catalog",
				Icon:     "📱",
				Recommendations: []string{
					"Create video content showcasing mixing/usage",
					"Add lifestyle imagery for dynamic ads",
					"Optimize for mobile-first browsing",
					"Include user-generated content tags",
				},
			},
			{
				Platform: "TikTok Shop",
				Icon:     "🎵",
				Recommendations: []string{
					"Add trending fitness hashtags to description",
					"Create short-form video content hooks",
					"Optimize for Gen Z language and terms",
					`Include "TikTok Made Me Buy It" appeal`,
				},
			},
		},
	},
	Dashboard: []models.DashboardRow{
		{SKU: "CRTN-001", Product: "Creatine Monohydrate", Status: "✅ Optimized"},
		{SKU: "PROT-002", Product: "Whey Protein Isolate", Status: "🔧 Fixing"},
		{SKU: "BCAA-003", Product: "BCAA Complex", Status: "✅ Compliant"},
	},
}
