// Package main hosts the rdbsql CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, applies flag
// overrides, sets up structured logging and hands off to internal/convert.
// Keep this package lean: conversion behaviour belongs in the internal
// packages, and commands here only translate flags and render results.
package main
