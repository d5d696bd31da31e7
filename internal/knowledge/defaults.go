package knowledge

// Default returns the static knowledge base shipped with the binary. It is
// the fallback whenever the content store is empty or unreachable, and the
// seed data for first-time deployments.
func Default() Base {
	return Base{
		Personal: Personal{
			Name:       "James Nicholas",
			Title:      "Senior Frontend Engineer",
			Location:   "Portland, Oregon",
			Phone:      "503-810-7738",
			Email:      "james@01webdevelopment.com",
			Experience: "6+ years specialized in React and modern frontend technologies, 15+ years total professional experience",
			GitHub:     "https://github.com/wastrilith2k",
			LinkedIn:   "https://www.linkedin.com/in/james-nicholas-1a81534/",
		},
		CurrentRole: Role{
			Company:  "Cavallo",
			Position: "Senior Frontend Engineer",
			Duration: "Sep 2022 - Present",
			Location: "Remote",
			Responsibilities: []string{
				"Collaborated with designers to optimize UI/UX for Analytics Cloud product using React/Redux",
				"Launched sophisticated analytics solution utilizing Zustand state management and Statsig",
				"Developed reusable micro-frontend architecture using GitHub Actions and AWS",
				"Integrated backend APIs in Python with comprehensive monitoring solutions using Grafana",
				"Streamlined development workflows with NodeJS, JavaScript, TypeScript, Docker, Git, CI/CD",
			},
		},
		WorkExperience: []Experience{
			{
				Company:  "Cavallo",
				Position: "Senior Frontend Engineer",
				Duration: "Sep 2022 - Present",
				Achievements: []string{
					"Micro-frontend architecture",
					"Analytics Cloud optimization",
					"Deployment efficiency improvements",
				},
			},
			{
				Company:  "Oracle America, Inc.",
				Position: "Scrum Master",
				Duration: "May 2022 - Aug 2022",
				Achievements: []string{
					"Enhanced operational agility",
					"Strategic product roadmaps",
					"Cross-functional team collaboration",
				},
			},
			{
				Company:  "Oracle America, Inc.",
				Position: "Tech Lead",
				Duration: "Nov 2021 - May 2022",
				Achievements: []string{
					"Microservice REST APIs development",
					"Test-Driven Development integration",
					"CI/CD automation",
				},
			},
			{
				Company:  "Oracle America, Inc.",
				Position: "Software Engineer",
				Duration: "May 2017 - Aug 2022",
				Achievements: []string{
					"React applications maintenance",
					"Cross-platform development",
					"Docker and Redis support",
				},
			},
			{
				Company:  "Webtrends, Inc.",
				Position: "Lead Technical Support Engineer",
				Duration: "May 2012 - Mar 2017",
				Achievements: []string{
					"SharePoint certifications",
					"Custom coding solutions",
					"Office 365 deployment",
				},
			},
			{
				Company:  "01 Web Development",
				Position: "Owner/Developer",
				Duration: "May 2008 - Mar 2017",
				Achievements: []string{
					"Web applications architecture",
					"Drupal CMS solutions",
					"Data science methodologies",
				},
			},
		},
		TechnicalSkills: []SkillArea{
			{Name: "languages", Skills: []string{"JavaScript (Advanced)", "TypeScript (Advanced)", "Python (Advanced)", "Java (Intermediate)", "PHP (Intermediate)"}},
			{Name: "frontend", Skills: []string{"React (Advanced)", "Next.js (Advanced)", "Tailwind CSS (Advanced)", "CSS (Advanced)", "React Query (Advanced)"}},
			{Name: "backend", Skills: []string{"Node.js (Advanced)", "PostgreSQL (Intermediate)", "MySQL (Intermediate)", "REST APIs (Advanced)", "GraphQL (Intermediate)"}},
			{Name: "devops", Skills: []string{"Docker (Advanced)", "Git (Advanced)", "CI/CD (Advanced)", "Jenkins (Intermediate)", "Webpack (Intermediate)"}},
			{Name: "cloud", Skills: []string{"AWS (Advanced)", "Microsoft Azure (Intermediate)", "Firebase (Advanced)", "Oracle Cloud Infrastructure"}},
			{Name: "architecture", Skills: []string{"Microservices (Advanced)", "Service Oriented Architecture", "Software Architecture"}},
		},
		Projects: []Project{
			{
				Name:         "Solo Adventuring with AI",
				Description:  "AI-powered D&D Game Master application using React, Firebase, and Google Gemini Pro for intelligent storytelling and campaign management",
				Technologies: []string{"React", "Firebase", "Google Gemini Pro", "Python", "TypeScript"},
				Highlights:   []string{"AI-driven storytelling", "Real-time chat with AI", "Campaign creation tools"},
			},
			{
				Name:         "Solo Adventuring Mobile",
				Description:  "React Native mobile companion app for AI-powered D&D adventures with cross-platform compatibility",
				Technologies: []string{"React Native", "TypeScript", "Firebase", "Java"},
				Highlights:   []string{"Cross-platform development", "Firebase integration", "Mobile optimization"},
			},
			{
				Name:         "Conway's Game of Life",
				Description:  "Interactive web-based cellular automaton simulation with modern JavaScript and React",
				Technologies: []string{"React", "JavaScript", "Webpack", "HTML", "CSS"},
				Highlights:   []string{"Mathematical visualization", "Interactive interface", "Algorithm implementation"},
			},
		},
		Education: Education{
			Degree:     "Associates of Applied Science",
			Field:      "Computer Information Systems",
			School:     "Portland Community College",
			Duration:   "Jan 2004 - Jan 2007",
			Additional: []string{"E-commerce Certificate in Design, Development, and Administration"},
		},
		Certifications: []string{
			"Microsoft Certified Professional (MCPS)",
			"MS: Programming in HTML5 with JavaScript and CSS3",
			"MCTS: SharePoint 2010 Configuration",
			"MCSD: SharePoint Applications",
		},
		Interests: []string{
			"AI-driven projects and applications",
			"Natural Language Processing",
			"Game development and interactive storytelling",
			"Open source contributions",
			"Mentoring and technical leadership",
		},
		VolunteerWork: []Volunteer{
			{Organization: "Oregon Humane Society", Duration: "2013-2016", Role: "Animal Welfare program volunteer"},
		},
		Approach: Approach{
			Strengths:   []string{"Technical expertise", "Problem-solving", "Team collaboration", "Innovation", "Mentoring"},
			Specialties: []string{"Frontend architecture", "React ecosystem", "CI/CD implementation", "User experience optimization"},
			Philosophy:  "Focused on translating user requirements into efficient code while collaborating closely with designers to ensure responsive user experiences",
		},
	}
}
