package generate

import "github.com/sidequest-app/sidequest/server/model"

// CatalogEntry is one job in the static fallback catalog. Entries are mapped
// verbatim into QuestData by the local engine.
type CatalogEntry struct {
	Title                  string
	Category               model.QuestCategory
	MinHoursPerWeek        int
	EarningsMin            float64
	EarningsMax            float64
	TimeToFirstDollarHours float64
	Difficulty             int
	StartupCost            float64
	WhyRecommended         string
	ActionSteps            []string
	Skills                 []string
	RequiredResources      []string
	Platforms              []string
	CommonPitfalls         []string
	Rarity                 model.QuestRarity
}

// Catalog is the built-in job catalog used when the AI path is unavailable.
// Order matters: ties in skill score are broken by catalog position.
var Catalog = []CatalogEntry{
	{
		Title:                  "Freelance Writing",
		Category:               model.CategoryFreelance,
		MinHoursPerWeek:        5,
		EarningsMin:            100,
		EarningsMax:            1500,
		TimeToFirstDollarHours: 20,
		Difficulty:             2,
		StartupCost:            0,
		WhyRecommended:         "Low barrier to entry with steady demand for blog posts, product copy, and newsletters.",
		ActionSteps: []string{
			"Pick one niche you can write about credibly",
			"Write two samples and publish them anywhere public",
			"Create profiles on two freelance marketplaces",
			"Pitch ten prospects with a short personalized note",
		},
		Skills:            []string{"writing", "editing", "research"},
		RequiredResources: []string{"laptop", "internet"},
		Platforms:         []string{"Upwork", "Contently", "Medium"},
		CommonPitfalls:    []string{"Underpricing early work", "Taking clients outside your niche"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Dog Walking",
		Category:               model.CategoryService,
		MinHoursPerWeek:        3,
		EarningsMin:            80,
		EarningsMax:            600,
		TimeToFirstDollarHours: 8,
		Difficulty:             1,
		StartupCost:            25,
		WhyRecommended:         "Immediate cash flow in any residential area, with repeat customers by default.",
		ActionSteps: []string{
			"Register on a pet care marketplace",
			"Set an introductory rate below local average",
			"Walk three first-time clients and ask for reviews",
			"Raise rates once you have five reviews",
		},
		Skills:            []string{"reliability", "animal care"},
		RequiredResources: []string{"free mornings or evenings"},
		Platforms:         []string{"Rover", "Wag"},
		CommonPitfalls:    []string{"Overbooking walk slots", "Skipping meet-and-greets"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Online Tutoring",
		Category:               model.CategoryService,
		MinHoursPerWeek:        4,
		EarningsMin:            150,
		EarningsMax:            1200,
		TimeToFirstDollarHours: 12,
		Difficulty:             2,
		StartupCost:            0,
		WhyRecommended:         "Subject knowledge converts directly to hourly income with zero startup cost.",
		ActionSteps: []string{
			"Choose one subject and one exam or level",
			"Apply to two tutoring platforms",
			"Prepare a reusable first-lesson plan",
			"Collect testimonials after each block of lessons",
		},
		Skills:            []string{"teaching", "math", "languages", "patience"},
		RequiredResources: []string{"laptop", "webcam", "quiet room"},
		Platforms:         []string{"Preply", "Wyzant", "Superprof"},
		CommonPitfalls:    []string{"Free trial lessons without limits", "Ignoring timezone spread"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Print-on-Demand Store",
		Category:               model.CategoryEcommerce,
		MinHoursPerWeek:        6,
		EarningsMin:            50,
		EarningsMax:            2000,
		TimeToFirstDollarHours: 60,
		Difficulty:             3,
		StartupCost:            50,
		WhyRecommended:         "Design once, sell forever; the supplier handles printing and shipping.",
		ActionSteps: []string{
			"Pick a narrow audience with strong identity",
			"Create ten designs around one theme",
			"Open a storefront connected to a print supplier",
			"Test designs with small ad budgets",
		},
		Skills:            []string{"design", "marketing", "illustration"},
		RequiredResources: []string{"laptop", "design software"},
		Platforms:         []string{"Etsy", "Printful", "Redbubble"},
		CommonPitfalls:    []string{"Competing on generic designs", "Scaling ads before a design proves out"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Social Media Management",
		Category:               model.CategoryFreelance,
		MinHoursPerWeek:        8,
		EarningsMin:            300,
		EarningsMax:            2500,
		TimeToFirstDollarHours: 40,
		Difficulty:             3,
		StartupCost:            0,
		WhyRecommended:         "Small businesses pay monthly retainers to stay visible without hiring in-house.",
		ActionSteps: []string{
			"Grow one account of your own as a portfolio",
			"Define a three-tier monthly package",
			"Pitch five local businesses with an audit of their accounts",
			"Deliver a 30-day content calendar for the first client",
		},
		Skills:            []string{"marketing", "writing", "photography", "communication"},
		RequiredResources: []string{"smartphone", "scheduling tool"},
		Platforms:         []string{"Instagram", "TikTok", "LinkedIn"},
		CommonPitfalls:    []string{"Unlimited revisions in the contract", "Vanity metrics as deliverables"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Web Design for Local Businesses",
		Category:               model.CategoryFreelance,
		MinHoursPerWeek:        10,
		EarningsMin:            500,
		EarningsMax:            5000,
		TimeToFirstDollarHours: 80,
		Difficulty:             4,
		StartupCost:            100,
		WhyRecommended:         "High ticket sizes and a permanent supply of outdated small-business sites.",
		ActionSteps: []string{
			"Build two demo sites for imaginary businesses",
			"List twenty local businesses with weak sites",
			"Send mockup screenshots as the cold pitch",
			"Offer a care plan for recurring revenue",
		},
		Skills:            []string{"web design", "html", "css", "javascript", "programming"},
		RequiredResources: []string{"laptop", "hosting account"},
		Platforms:         []string{"Webflow", "WordPress", "Squarespace"},
		CommonPitfalls:    []string{"Unscoped revision cycles", "One-off projects with no retainer"},
		Rarity:            model.RarityRare,
	},
	{
		Title:                  "YouTube Channel",
		Category:               model.CategoryContent,
		MinHoursPerWeek:        8,
		EarningsMin:            0,
		EarningsMax:            3000,
		TimeToFirstDollarHours: 200,
		Difficulty:             4,
		StartupCost:            150,
		WhyRecommended:         "Compounding audience asset; slow to start but durable once monetized.",
		ActionSteps: []string{
			"Pick a topic you can sustain for fifty videos",
			"Publish weekly for three months without checking revenue",
			"Study retention graphs and double down on what holds",
			"Add affiliate links before ad revenue arrives",
		},
		Skills:            []string{"video editing", "storytelling", "presentation"},
		RequiredResources: []string{"camera or phone", "microphone", "editing software"},
		Platforms:         []string{"YouTube"},
		CommonPitfalls:    []string{"Quitting before the algorithm finds an audience", "Chasing trends outside the niche"},
		Rarity:            model.RarityRare,
	},
	{
		Title:                  "Selling Digital Templates",
		Category:               model.CategoryDigital,
		MinHoursPerWeek:        4,
		EarningsMin:            30,
		EarningsMax:            1000,
		TimeToFirstDollarHours: 50,
		Difficulty:             2,
		StartupCost:            0,
		WhyRecommended:         "Pure margin products that sell while you sleep once listed.",
		ActionSteps: []string{
			"Find template categories with demand and thin supply",
			"Build five templates solving one painful task",
			"List them with keyword-rich titles",
			"Refresh listings monthly based on search terms",
		},
		Skills:            []string{"design", "spreadsheets", "organization", "notion"},
		RequiredResources: []string{"laptop"},
		Platforms:         []string{"Etsy", "Gumroad", "Notion Marketplace"},
		CommonPitfalls:    []string{"Building before validating demand", "Ignoring listing SEO"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Food Delivery Riding",
		Category:               model.CategoryGig,
		MinHoursPerWeek:        5,
		EarningsMin:            200,
		EarningsMax:            1500,
		TimeToFirstDollarHours: 4,
		Difficulty:             1,
		StartupCost:            0,
		WhyRecommended:         "The fastest route from signup to first payout, fully on your own schedule.",
		ActionSteps: []string{
			"Sign up on two delivery apps",
			"Ride the dinner peak for one week",
			"Track per-hour earnings by zone",
			"Keep only the app and zone that pays best",
		},
		Skills:            []string{"driving", "navigation"},
		RequiredResources: []string{"bike or car", "smartphone"},
		Platforms:         []string{"Uber Eats", "DoorDash"},
		CommonPitfalls:    []string{"Ignoring vehicle costs", "Riding off-peak hours"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Virtual Assistant",
		Category:               model.CategoryFreelance,
		MinHoursPerWeek:        10,
		EarningsMin:            400,
		EarningsMax:            2000,
		TimeToFirstDollarHours: 30,
		Difficulty:             2,
		StartupCost:            0,
		WhyRecommended:         "Every overloaded founder needs inbox, calendar, and research help.",
		ActionSteps: []string{
			"List the five admin tasks you do best",
			"Create a services page with fixed monthly packages",
			"Join two VA placement communities",
			"Ask the first client for two referrals",
		},
		Skills:            []string{"organization", "communication", "scheduling", "email"},
		RequiredResources: []string{"laptop", "internet"},
		Platforms:         []string{"Belay", "Fancy Hands", "Upwork"},
		CommonPitfalls:    []string{"Hourly billing for routine work", "No boundaries on response times"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Photography Gigs",
		Category:               model.CategoryService,
		MinHoursPerWeek:        6,
		EarningsMin:            150,
		EarningsMax:            2500,
		TimeToFirstDollarHours: 25,
		Difficulty:             3,
		StartupCost:            300,
		WhyRecommended:         "Events, portraits, and product shots pay well per session in every city.",
		ActionSteps: []string{
			"Build a twenty-image portfolio in one genre",
			"Offer three discounted shoots for testimonials",
			"List session packages with clear deliverables",
			"Sell unused shots as stock photos",
		},
		Skills:            []string{"photography", "editing", "lightroom"},
		RequiredResources: []string{"camera", "editing software"},
		Platforms:         []string{"Instagram", "Shutterstock", "Thumbtack"},
		CommonPitfalls:    []string{"Shooting every genre at once", "Delivering unedited batches"},
		Rarity:            model.RarityCommon,
	},
	{
		Title:                  "Handmade Crafts Store",
		Category:               model.CategoryEcommerce,
		MinHoursPerWeek:        7,
		EarningsMin:            100,
		EarningsMax:            1800,
		TimeToFirstDollarHours: 45,
		Difficulty:             3,
		StartupCost:            120,
		WhyRecommended:         "Buyers pay a premium for handmade goods with a story behind them.",
		ActionSteps: []string{
			"Choose one product you can make repeatably",
			"Cost out materials and time per unit",
			"Photograph products in natural light",
			"Open a storefront and list ten items",
		},
		Skills:            []string{"crafting", "woodworking", "knitting", "jewelry"},
		RequiredResources: []string{"workspace", "materials"},
		Platforms:         []string{"Etsy", "local markets"},
		CommonPitfalls:    []string{"Pricing that ignores labor time", "Inventory built before demand"},
		Rarity:            model.RarityCommon,
	},
}
