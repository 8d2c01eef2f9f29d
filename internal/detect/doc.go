// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package detect finds projects in a directory tree and classifies them by ecosystem.
//
// Projects are detected based on criteria such as:
// 1. Presence of project files (pom.xml, build.gradle, package.json, ...).
// 2. Source files that only appear together with a build file (Makefile + *.c).
//
// Project files that carry metadata are also read for the project name and version.
//
// - `Detect()` to detect all projects under a root directory.
// - `DetectDirectory()` to detect a project in a single directory.
//
// A detected project root is a leaf: nothing below it is classified.
package detect
