package detect

// Order here determines precedence when a directory holds the project files of several ecosystems.
var allDetectors = []projectDetector{
	&metadataDetector{
		projectType: JavaMaven,
		fileNames:   []string{"pom.xml"},
		parse:       parseMaven,
	},
	&metadataDetector{
		projectType: JavaGradle,
		fileNames:   []string{"build.gradle", "build.gradle.kts"},
		parse:       parseGradle,
	},
	&metadataDetector{
		projectType: JavaScript,
		fileNames:   []string{"package.json"},
		parse:       parseManifest,
	},
	&markerDetector{
		projectType: TypeScript,
		fileNames:   []string{"tsconfig.json"},
	},
	&markerDetector{
		projectType: Python,
		fileNames:   []string{"pyproject.toml", "setup.py", "requirements.txt", "pipfile", "main.py"},
	},
	&markerDetector{
		projectType: CSharp,
		extensions:  []string{".sln", ".csproj"},
	},
	&markerDetector{
		projectType: CPP,
		fileNames:   []string{"cmakelists.txt"},
	},
	&markerDetector{
		projectType: CPP,
		fileNames:   []string{"makefile", "gnumakefile"},
		companions:  []string{".cpp", ".cc", ".cxx"},
	},
	&markerDetector{
		projectType: C,
		fileNames:   []string{"makefile", "gnumakefile"},
		companions:  []string{".c"},
	},
	&markerDetector{
		projectType: JavaNative,
		fileNames:   []string{".classpath"},
		extensions:  []string{".iml"},
	},
}
