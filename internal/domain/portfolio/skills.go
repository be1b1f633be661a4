package portfolio

import "strings"

// ExperienceBrackets is the closed set of year ranges a skill may carry.
var ExperienceBrackets = []string{"0-1", "1-2", "2-3", "3-4", "4-5", "5+"}

func ValidExperience(bracket string) bool {
	for _, b := range ExperienceBrackets {
		if b == bracket {
			return true
		}
	}
	return false
}

// SuggestSkills returns vocabulary entries containing the query
// (case-insensitive), excluding names already present in existing.
// An empty query yields no suggestions.
func SuggestSkills(query string, existing []Skill) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	lowered := strings.ToLower(query)

	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[strings.ToLower(s.Name)] = struct{}{}
	}

	var out []string
	for _, name := range skillVocabulary {
		if !strings.Contains(strings.ToLower(name), lowered) {
			continue
		}
		if _, ok := taken[strings.ToLower(name)]; ok {
			continue
		}
		out = append(out, name)
	}
	return out
}

// skillVocabulary backs the editor's autocomplete.
var skillVocabulary = []string{
	// Frontend frameworks & libraries
	"React", "Vue", "Angular", "Svelte", "Next.js", "Nuxt.js", "Gatsby", "Remix", "Ember.js", "Backbone.js", "Meteor.js",
	"Preact", "Alpine.js", "Solid.js", "Stencil", "Lit", "Hyperapp", "Riot.js", "Mithril", "Dojo", "Inferno",

	// Backend frameworks & libraries
	"Node.js", "Express", "NestJS", "Koa.js", "Hapi.js", "Fastify", "Django", "Flask", "FastAPI", "Spring Boot",
	"Ruby on Rails", "Laravel", "Symfony", "Phoenix", "ASP.NET Core", "Gin", "Echo", "Fiber", "Play Framework", "Micronaut",

	// Programming languages
	"JavaScript", "TypeScript", "Python", "Java", "C#", "C++", "C", "Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin",
	"Scala", "Elixir", "Haskell", "Perl", "Lua", "R", "Dart", "Objective-C", "Shell", "Bash", "PowerShell",

	// Web technologies & tools
	"HTML", "CSS", "Tailwind", "Sass", "Less", "Stylus", "Bootstrap", "Material-UI", "Chakra UI", "Ant Design",
	"Bulma", "Foundation", "Semantic UI", "UIKit", "Vanilla JS", "jQuery", "Three.js", "D3.js", "Chart.js", "GSAP",
	"Webpack", "Vite", "Parcel", "Rollup", "Babel", "ESLint", "Prettier", "Storybook", "Bit", "Nx", "Turborepo", "Lerna",

	// Mobile & cross-platform
	"React Native", "Flutter", "Ionic", "Xamarin", "SwiftUI", "Jetpack Compose", "Cordova", "NativeScript", "Kotlin Multiplatform",
	"Unity", "Godot", "Cocos2d-x", "ARKit", "ARCore", "VR Development", "Mixed Reality", "HoloLens",

	// Databases
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Firebase", "Cassandra", "MariaDB", "SQLite", "Oracle DB", "Microsoft SQL Server",
	"DynamoDB", "Neo4j", "ElasticSearch", "InfluxDB", "CockroachDB", "ArangoDB", "Realm", "Supabase",

	// DevOps & cloud
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Terraform", "Ansible", "Chef", "Puppet", "Jenkins", "GitHub Actions",
	"GitLab CI", "CircleCI", "Travis CI", "Vercel", "Netlify", "Heroku", "DigitalOcean", "Linode", "OpenShift", "CI/CD",

	// Testing
	"Jest", "Mocha", "Chai", "Cypress", "Playwright", "Puppeteer", "React Testing Library", "Enzyme", "Selenium", "Jasmine",
	"JUnit", "PyTest", "RSpec", "TestNG", "Unit Testing", "Integration Testing", "End-to-End Testing", "Load Testing",

	// Version control & collaboration
	"Git", "GitHub", "GitLab", "Bitbucket", "SourceTree", "SVN", "Mercurial", "Notion", "Trello", "Asana", "ClickUp", "Miro", "Slack", "Microsoft Teams",

	// Design / UI/UX / motion
	"Figma", "Sketch", "Adobe XD", "Photoshop", "Illustrator", "InDesign", "Canva", "Blender", "After Effects", "Premiere Pro",
	"Cinema 4D", "Maya", "CorelDRAW", "Procreate", "UI Design", "UX Design", "Interaction Design", "Wireframing", "Prototyping",
	"Motion Graphics", "Animation", "Typography", "Color Theory", "Brand Identity", "Illustration", "Photography", "Infographic Design",

	// AI / ML
	"ChatGPT", "GPT-4", "Claude AI", "LLaMA", "Mistral AI", "MidJourney", "Stable Diffusion",
	"OpenAI API", "Hugging Face Transformers", "Prompt Engineering", "Voice Cloning AI",
	"Text-to-Speech AI", "Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Scikit-learn", "Keras", "Pandas", "NumPy",
	"Matplotlib", "Seaborn", "Plotly", "Tableau", "Power BI", "ML Ops",

	// Security / blockchain
	"Penetration Testing", "Network Security", "Ethical Hacking", "Cryptography", "Blockchain Development", "Solidity", "Web3.js", "Ethers.js",
	"NFT Development", "Smart Contracts", "DeFi", "Metaverse Development",

	// Automation / scripting
	"RPA", "Python Automation", "Bash Scripting", "PowerShell Scripting", "Excel Automation", "Zapier", "Make (Integromat)", "IFTTT", "Automation Workflows",

	// Cloud architecture / edge / CDN
	"Serverless Architecture", "Edge Computing", "CDN Management", "Cloud Design Patterns",

	// 3D & AR/VR
	"Augmented Reality SDKs", "3D Modeling", "3D Animation", "3D Rendering", "VR Design",

	// Other
	"Content Writing", "Copywriting", "SEO", "Social Media Management", "Marketing Automation", "Email Marketing", "Google Analytics",
	"Data Analysis", "Growth Hacking", "Content Strategy", "Blog Writing", "Technical Writing", "Scriptwriting", "Brand Storytelling",
	"Video Editing", "Final Cut Pro", "DaVinci Resolve", "Motion Capture", "Stop Motion", "Visual Effects (VFX)",
}
