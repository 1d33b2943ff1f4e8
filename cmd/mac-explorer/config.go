package main

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	backendURL
	configurationFile
	envFile
	assetsDir
)
