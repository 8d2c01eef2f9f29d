// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package relocate moves detected projects into the destination folder configured for their project type.
package relocate
