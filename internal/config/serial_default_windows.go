//go:build windows

package config

const defaultSerialPort = "COM3"
